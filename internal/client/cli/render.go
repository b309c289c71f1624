package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
)

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// renderKind prints the visible entries of one kind. New and existing
// entries are told apart by their intent.
func renderKind(w io.Writer, kind results.Kind, view []results.Position, categoryName func(models.ID) string) {
	fmt.Fprintf(w, "%s results (%d)\n", kind, len(view))
	for _, p := range view {
		e := p.Entry
		cat := categoryName(e.CategoryID)
		if cat == "" && !e.CategoryID.IsZero() {
			cat = "#" + e.CategoryID.String()
		}

		id := "new"
		if e.Persisted() {
			id = "id " + e.ID.String()
		}
		fmt.Fprintf(w, "  [%d] %s (%s)\n", p.Pos, orDash(cat), id)
		fmt.Fprintf(w, "      result: %s\n", orDash(e.TextResult))
		fmt.Fprintf(w, "      notes:  %s\n", orDash(e.Notes))
		if len(e.Images) > 0 {
			fmt.Fprintf(w, "      images: %d/%d\n", len(e.Images), results.MaxImages)
			for _, img := range e.Images {
				fmt.Fprintf(w, "        %s %s\n", img.ID, img.URL)
			}
		}
	}
}

func renderCategories(w io.Writer, list []models.Category) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDESCRIPTION")
	for _, c := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, c.Description)
	}
	tw.Flush()
}

func renderCases(w io.Writer, page models.Page[models.CaseSummary]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tREQUESTS")
	for _, c := range page.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", c.ID, c.Name, c.Status, c.RequestCounter)
	}
	tw.Flush()
	fmt.Fprintf(w, "%d of %d", len(page.Items), page.Total)
	if page.HasMore {
		fmt.Fprint(w, " (more available)")
	}
	fmt.Fprintln(w)
}

func roleNames(roles []models.Role) string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.RoleName
	}
	return strings.Join(names, ",")
}

func renderUsers(w io.Writer, page models.Page[models.User]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tACTIVE\tROLES")
	for _, u := range page.Items {
		name := u.FullName
		if name == "" {
			name = u.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", u.ID, u.Email, name, u.Active, roleNames(u.Roles))
	}
	tw.Flush()
}

func renderRoles(w io.Writer, roles []models.Role) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tROLE\tDESCRIPTION")
	for _, r := range roles {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.ID, r.RoleName, r.Description)
	}
	tw.Flush()
}
