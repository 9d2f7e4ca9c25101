package categories

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	apperrors "github.com/julianstephens/habitkit/internal/errors"
	"github.com/julianstephens/habitkit/internal/models"
)

type CategoryCmd struct {
	Add    CategoryAddCmd    `cmd:"" help:"Add a category."`
	Edit   CategoryEditCmd   `cmd:"" help:"Rename or restyle a category."`
	List   CategoryListCmd   `cmd:"" help:"List categories." default:"1"`
	Delete CategoryDeleteCmd `cmd:"" help:"Delete a category, moving its habits to another one."`
}

type CategoryAddCmd struct {
	Name  string `arg:"" help:"Category name."`
	Icon  string `help:"Icon name." default:"${category_icon}"`
	Color string `help:"Color as #RRGGBB." default:"${category_color}"`
}

func (c *CategoryAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return apperrors.Invalid("category name cannot be empty")
	}
	icon, color := c.Icon, c.Color
	if icon == "" {
		icon = constants.FallbackCategoryIcon
	}
	if color == "" {
		color = constants.FallbackCategoryColor
	}

	category := models.NewCategory(name, icon, color)
	if !ctx.Store().AddCategory(category) {
		return fmt.Errorf("category %q already exists", name)
	}
	fmt.Printf("Added category: %s\n", name)
	return nil
}

type CategoryEditCmd struct {
	Category string  `arg:"" help:"Category name or ID."`
	Name     *string `help:"New name."`
	Icon     *string `help:"New icon."`
	Color    *string `help:"New color as #RRGGBB."`
}

func (c *CategoryEditCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	category, err := cli.FindCategory(s, c.Category)
	if err != nil {
		return err
	}

	if c.Name != nil {
		name := strings.TrimSpace(*c.Name)
		if name == "" {
			return apperrors.Invalid("category name cannot be empty")
		}
		if other, exists := s.CategoryByName(name); exists && other.ID != category.ID {
			return fmt.Errorf("category %q already exists", name)
		}
		category.Name = name
	}
	if c.Icon != nil {
		category.Icon = *c.Icon
	}
	if c.Color != nil {
		category.ColorHex = *c.Color
	}

	s.UpdateCategory(category)
	fmt.Printf("Updated category: %s\n", category.Name)
	return nil
}

type CategoryListCmd struct{}

func (c *CategoryListCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	categories := s.Categories()
	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}
	for _, category := range categories {
		fmt.Printf("  %s  %-16s %s  (%d active habits)\n",
			cli.ShortID(category.ID), category.Name, category.ColorHex, s.HabitsCount(category.ID))
	}
	return nil
}

type CategoryDeleteCmd struct {
	Category string `arg:"" help:"Category name or ID."`
	Yes      bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *CategoryDeleteCmd) Run(ctx *cli.Context) error {
	s := ctx.Store()
	category, err := cli.FindCategory(s, c.Category)
	if err != nil {
		return err
	}

	count := s.HabitsCount(category.ID)
	if count > 0 && !c.Yes {
		if !cli.Confirm(fmt.Sprintf("%d habits use %q and will be moved. Continue?", count, category.Name)) {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}
	s.DeleteCategory(category.ID)
	fmt.Printf("Deleted category: %s\n", category.Name)
	return nil
}
