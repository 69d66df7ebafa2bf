package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Zachkp/folio/internal/site"
	"github.com/Zachkp/folio/web"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render every page to static HTML",
	Long: `Renders each page and article in its initial state into the output
directory, together with the static assets and shared components. Links
use clean URLs (/about serves about.html).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if exportDir != "" {
			cfg.Export.OutDir = exportDir
		}
		logger := newLogger()

		st, _, err := buildSite(cfg, logger)
		if err != nil {
			return err
		}
		return exportSite(cmd.Context(), st, cfg.Export.OutDir)
	},
}

type exportJob struct {
	file   string
	render func(ctx context.Context) (string, error)
}

func exportSite(ctx context.Context, st *site.Site, outDir string) error {
	var jobs []exportJob
	for _, name := range site.Pages {
		file, path := name+".html", "/"+name
		if name == site.PageHome {
			path = "/"
		}
		jobs = append(jobs, exportJob{file: file, render: func(ctx context.Context) (string, error) {
			doc, err := st.Page(ctx, name, path, nil)
			if err != nil {
				return "", err
			}
			return doc.Html()
		}})
	}
	for _, id := range st.ArticleIDs() {
		jobs = append(jobs, exportJob{
			file: filepath.Join("blog", "post", strconv.Itoa(id)+".html"),
			render: func(ctx context.Context) (string, error) {
				doc, err := st.Post(ctx, id)
				if err != nil {
					return "", err
				}
				return doc.Html()
			},
		})
	}

	bar := progressbar.NewOptions(len(jobs),
		progressbar.OptionSetDescription("Exporting pages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	for _, job := range jobs {
		markup, err := job.render(ctx)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", job.file, err)
		}
		if err := writeFile(filepath.Join(outDir, job.file), []byte(markup)); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if err := copyTree(web.Static(), filepath.Join(outDir, "static")); err != nil {
		return err
	}
	if err := copyTree(web.Components(), filepath.Join(outDir, "components")); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Exported %d pages to %s\n", len(jobs), outDir)
	return nil
}

func copyTree(src fs.FS, dst string) error {
	return fs.WalkDir(src, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(src, path)
		if err != nil {
			return err
		}
		return writeFile(filepath.Join(dst, filepath.FromSlash(path)), data)
	})
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", "", "output directory (overrides export.out_dir)")
	rootCmd.AddCommand(exportCmd)
}
