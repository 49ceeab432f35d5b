package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/study"
	"github.com/spf13/cobra"
)

var materialCmd = &cobra.Command{
	Use:   "material",
	Short: "Manage study materials",
}

var materialAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Upload a text or markdown file as study material",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		switch strings.ToLower(filepath.Ext(path)) {
		case ".txt", ".md", ".markdown":
		default:
			return fmt.Errorf("unsupported file type %q (want .txt or .md)", filepath.Ext(path))
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read material: %w", err)
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		svc := study.NewService(study.Config{Materials: d.store.MaterialRepo(), Logger: d.log})
		m, err := svc.AddMaterial(cmd.Context(), name, string(content))
		if errors.Is(err, study.ErrMaterialTooShort) {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Added %q (%s, %d chars)\n", m.Name, m.ID, len([]rune(m.Content)))
		return nil
	},
}

var materialListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded materials",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		items, err := d.store.MaterialRepo().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list materials: %w", err)
		}
		if len(items) == 0 {
			fmt.Println("No materials yet. Add one with `studybuddy material add <file>`.")
			return nil
		}

		fmt.Printf("%-36s  %-28s  %8s  %s\n", "ID", "Name", "Chars", "Added")
		fmt.Println(strings.Repeat("─", 92))
		for _, m := range items {
			fmt.Printf("%-36s  %-28s  %8d  %s\n",
				m.ID, truncate(m.Name, 28), m.Chars, m.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var materialShowCmd = &cobra.Command{
	Use:   "show <id-or-name>",
	Short: "Print a material's text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		m, err := d.store.MaterialRepo().Find(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no material named %q", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n\n%s\n", m.Name, m.Content)
		return nil
	},
}

func init() {
	materialAddCmd.Flags().String("name", "", "Display name (defaults to the file name)")

	materialCmd.AddCommand(materialAddCmd)
	materialCmd.AddCommand(materialListCmd)
	materialCmd.AddCommand(materialShowCmd)
}
