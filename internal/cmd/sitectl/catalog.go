package sitectl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kakascoaching/site/internal/content"
	i18ncatalog "github.com/kakascoaching/site/internal/platform/i18n/catalog"
	"github.com/spf13/cobra"
)

var (
	errMissingAssets       = errors.New("assets missing")
	errMissingTranslations = errors.New("translations missing")
)

func (a *app) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate the content catalog",
	}
	cmd.AddCommand(a.catalogCheckCmd(), a.catalogTranslationsCmd())
	return cmd
}

func (a *app) catalogCheckCmd() *cobra.Command {
	var (
		assets     string
		contentDir string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report catalog files missing from an asset directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(assets) == "" {
				return errors.New("--assets is required")
			}
			info, err := os.Stat(assets)
			if err != nil {
				return fmt.Errorf("stat assets: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", assets)
			}

			catalog, err := loadCatalog(contentDir)
			if err != nil {
				return err
			}
			expected := content.ExpectedAssets(catalog)
			missing := content.MissingAssets(os.DirFS(assets), catalog)
			out := cmd.OutOrStdout()
			for _, name := range missing {
				fmt.Fprintln(out, alertStyle.Render("missing")+" "+name)
			}
			fmt.Fprintln(out, summary.Render(fmt.Sprintf("%d of %d files present", len(expected)-len(missing), len(expected))))
			if len(missing) > 0 {
				return fmt.Errorf("%w: %d", errMissingAssets, len(missing))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&assets, "assets", "", "asset directory to check")
	cmd.Flags().StringVar(&contentDir, "content", "", "catalog override directory (default embedded)")
	return cmd
}

func (a *app) catalogTranslationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translations",
		Short: "Report message keys a locale does not translate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return checkTranslations(cmd.OutOrStdout(), i18ncatalog.Default())
		},
	}
}

func checkTranslations(out io.Writer, bundle *i18ncatalog.Bundle) error {
	total := 0
	for _, locale := range bundle.Locales() {
		if locale == i18ncatalog.BaseLocale {
			continue
		}
		missing := bundle.MissingKeys(locale)
		for _, key := range missing {
			fmt.Fprintln(out, alertStyle.Render("untranslated")+" "+locale+" "+key)
		}
		fmt.Fprintln(out, summary.Render(fmt.Sprintf("%s: %d missing", locale, len(missing))))
		total += len(missing)
	}
	if total > 0 {
		return fmt.Errorf("%w: %d", errMissingTranslations, total)
	}
	return nil
}

func loadCatalog(dir string) (*content.Catalog, error) {
	if strings.TrimSpace(dir) != "" {
		return content.LoadDir(dir)
	}
	return content.LoadEmbedded()
}
