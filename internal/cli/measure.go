package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/maplabel/pkg/core/text"
	"github.com/matzehuels/maplabel/pkg/errors"
	"github.com/matzehuels/maplabel/pkg/fonts"
)

// measureOpts holds the command-line flags for the measure command.
type measureOpts struct {
	font string  // TrueType/OpenType file, Go Regular when empty
	size float64 // font size in points
	dpi  float64 // device resolution
}

// measureCommand creates the measure command.
func (c *CLI) measureCommand() *cobra.Command {
	opts := measureOpts{size: 12, dpi: fonts.DefaultDPI}

	cmd := &cobra.Command{
		Use:   "measure [text]",
		Short: "Print the character metrics of a label text",
		Long: `Print the width and height of every character of a label text, as the
placement engine sees them, followed by the total size of the text.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			label := strings.Join(args, " ")
			t, err := measureText(label, opts)
			if err != nil {
				return err
			}
			fmt.Println(StyleTitle.Render(fmt.Sprintf("%q at %gpt", label, opts.size)))
			fmt.Println(renderMetrics(t))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.font, "font", "", "font file (default: Go Regular)")
	cmd.Flags().Float64Var(&opts.size, "size", opts.size, "font size in points")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", opts.dpi, "device resolution")

	return cmd
}

// measureText measures s with the font described by opts.
func measureText(s string, opts measureOpts) (*text.MeasuredText, error) {
	var data []byte
	if opts.font != "" {
		if err := errors.ValidatePath(opts.font); err != nil {
			return nil, err
		}
		b, err := os.ReadFile(opts.font)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read font")
		}
		data = b
	}

	m, err := fonts.NewMeasurer(data, opts.size, opts.dpi)
	if err != nil {
		return nil, err
	}
	defer m.Close()
	return m.Measure(s), nil
}

// renderMetrics formats t as a table with one row per character and a
// total row.
func renderMetrics(t *text.MeasuredText) string {
	rows := make([][]string, 0, t.Len()+1)
	for i, ch := range t.Chars() {
		rows = append(rows, []string{
			fmt.Sprint(i),
			fmt.Sprintf("%q", ch.Char),
			fmt.Sprintf("%.2f", ch.Width),
			fmt.Sprintf("%.2f", ch.Height),
		})
	}
	w, h := t.Dimensions()
	rows = append(rows, []string{"", "total", fmt.Sprintf("%.2f", w), fmt.Sprintf("%.2f", h)})

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	last := len(rows) - 1

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Char", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == last:
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			case col >= 2:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	return tbl.Render()
}
