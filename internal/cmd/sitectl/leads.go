package sitectl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kakascoaching/site/internal/export"
	"github.com/kakascoaching/site/internal/leads"
	"github.com/kakascoaching/site/internal/platform/sftpclient"
	"github.com/kakascoaching/site/internal/storage"
	"github.com/spf13/cobra"
)

const exportLimit = 100000

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	failedStyle = cellStyle.Foreground(lipgloss.Color("160"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	summary     = lipgloss.NewStyle().Faint(true)
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
)

func (a *app) leadsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Inspect recorded form submissions",
	}
	cmd.AddCommand(a.leadsListCmd(), a.leadsExportCmd())
	return cmd
}

func (a *app) leadsListCmd() *cobra.Command {
	var (
		form   string
		status string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent submissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := leadFilter(form, status, limit)
			if err != nil {
				return err
			}
			db, err := a.openLedger()
			if err != nil {
				return err
			}
			defer db.Close()

			leads, err := db.ListLeads(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if err := renderLeads(cmd.OutOrStdout(), leads); err != nil {
				return err
			}
			return renderTotals(cmd, db)
		},
	}
	cmd.Flags().StringVar(&form, "form", "", "only this form (enrollment, intake)")
	cmd.Flags().StringVar(&status, "status", "", "only this relay status (sent, failed)")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows")
	return cmd
}

func (a *app) leadsExportCmd() *cobra.Command {
	var (
		out    string
		form   string
		upload bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export submissions as CSV",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(out) == "" {
				out = export.FileName(time.Now())
			}
			if upload {
				if err := a.cfg.SFTP.Validate(); err != nil {
					return err
				}
			}
			db, err := a.openLedger()
			if err != nil {
				return err
			}
			defer db.Close()

			leads, err := db.ListLeads(cmd.Context(), storage.LeadFilter{Form: form, Limit: exportLimit})
			if err != nil {
				return err
			}
			if err := writeExport(out, leads); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d leads to %s\n", len(leads), out)

			if !upload {
				return nil
			}
			f, err := os.Open(out)
			if err != nil {
				return fmt.Errorf("open export: %w", err)
			}
			defer f.Close()
			remote, err := sftpclient.Upload(cmd.Context(), a.cfg.SFTP, filepath.Base(out), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded to %s:%s\n", a.cfg.SFTP.Host, remote)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default leads-<timestamp>.csv)")
	cmd.Flags().StringVar(&form, "form", "", "only this form")
	cmd.Flags().BoolVar(&upload, "upload", false, "upload the export over SFTP")
	return cmd
}

func leadFilter(form, status string, limit int) (storage.LeadFilter, error) {
	filter := storage.LeadFilter{Form: strings.TrimSpace(form), Limit: limit}
	if filter.Form != "" && !knownForm(filter.Form) {
		return storage.LeadFilter{}, fmt.Errorf("unknown form %q", filter.Form)
	}
	if status = strings.TrimSpace(status); status != "" {
		filter.Status = storage.LeadStatus(status)
		if !filter.Status.Valid() {
			return storage.LeadFilter{}, fmt.Errorf("unknown status %q", status)
		}
	}
	return filter, nil
}

func writeExport(path string, leads []storage.Lead) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	if err := export.WriteCSV(f, leads); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	return nil
}

func renderLeads(w io.Writer, leads []storage.Lead) error {
	if len(leads) == 0 {
		_, err := fmt.Fprintln(w, summary.Render("no submissions recorded"))
		return err
	}
	rows := make([][]string, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, []string{
			lead.CreatedAt.Local().Format("2006-01-02 15:04"),
			lead.Form,
			string(lead.Status),
			contactOf(lead),
			lead.ID,
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("CREATED", "FORM", "STATUS", "CONTACT", "ID").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(leads) && leads[row].Status == storage.LeadFailed {
				return failedStyle
			}
			return cellStyle
		})
	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, summary.Render(strconv.Itoa(len(leads))+" submissions"))
	return err
}

func knownForm(id string) bool {
	for _, f := range leads.Forms() {
		if f.ID == id {
			return true
		}
	}
	return false
}

// renderTotals prints ledger-wide counts per relay status.
func renderTotals(cmd *cobra.Command, db storage.LeadStore) error {
	sent, err := db.CountLeads(cmd.Context(), storage.LeadSent)
	if err != nil {
		return err
	}
	failed, err := db.CountLeads(cmd.Context(), storage.LeadFailed)
	if err != nil {
		return err
	}
	line := fmt.Sprintf("ledger: %d sent / %d failed", sent, failed)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), summary.Render(line))
	return err
}

// contactOf picks the most useful way to reach the submitter.
func contactOf(lead storage.Lead) string {
	for _, key := range []string{"user_email", "email", "user_contact", "contact_no"} {
		if value := strings.TrimSpace(lead.Fields[key]); value != "" {
			return value
		}
	}
	return "-"
}
