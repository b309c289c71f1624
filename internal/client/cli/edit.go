package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
	"github.com/dmitrijs2005/casekeeper/internal/filex"
	"github.com/goccy/go-json"
)

// readImages is a test seam for filex.ReadImages.
var readImages = filex.ReadImages

func parseKindPos(args []string, usage string) (results.Kind, int, error) {
	if len(args) < 2 {
		return "", 0, errUsage(usage)
	}
	kind, err := results.ParseKind(args[0])
	if err != nil {
		return "", 0, err
	}
	pos, err := strconv.Atoi(args[1])
	if err != nil {
		return "", 0, errUsage(usage)
	}
	return kind, pos, nil
}

func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("open <caseID>")
	}
	if err := a.session.Start(ctx, models.ParseID(args[0])); err != nil {
		return err
	}
	a.printf("Opened case %s %q\n", a.session.CaseID(), a.session.CaseName())
	return a.Show(ctx, nil)
}

func (a *App) Resume(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("resume <caseID>")
	}
	if err := a.session.Resume(ctx, models.ParseID(args[0])); err != nil {
		return err
	}
	a.printf("Resumed draft for case %s %q\n", a.session.CaseID(), a.session.CaseName())
	return a.Show(ctx, nil)
}

func (a *App) Drafts(ctx context.Context, _ []string) error {
	list, err := a.session.Drafts(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("No saved drafts.")
		return nil
	}
	for _, d := range list {
		a.printf("case %s %q\tsaved %s\n", d.CaseID, d.CaseName, d.SavedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *App) Show(_ context.Context, args []string) error {
	kinds := results.Kinds
	if len(args) > 0 {
		k, err := results.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []results.Kind{k}
	}

	for _, k := range kinds {
		view, err := a.session.View(k)
		if err != nil {
			return err
		}
		renderKind(a.out, k, view, func(id models.ID) string {
			return a.session.CategoryName(k, id)
		})
	}
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("add <kind>")
	}
	kind, err := results.ParseKind(args[0])
	if err != nil {
		return err
	}
	pos, err := a.session.AddEntry(ctx, kind)
	if err != nil {
		return err
	}
	a.printf("Added %s #%d; set its category with: set %s %d category <name|id>\n", kind, pos, args[0], pos)
	return nil
}

func (a *App) Set(ctx context.Context, args []string) error {
	const usage = "set <kind> <pos> <category|text|notes> [value]"
	kind, pos, err := parseKindPos(args, usage)
	if err != nil {
		return err
	}
	if len(args) < 3 {
		return errUsage(usage)
	}
	field, err := results.ParseField(args[2])
	if err != nil {
		return err
	}
	value := strings.Join(args[3:], " ")
	return a.session.UpdateField(ctx, kind, pos, field, value)
}

func (a *App) Img(ctx context.Context, args []string) error {
	const usage = "img <kind> <pos> <file...>"
	kind, pos, err := parseKindPos(args, usage)
	if err != nil {
		return err
	}
	paths := args[2:]
	if len(paths) == 0 {
		return errUsage(usage)
	}

	room, err := a.session.Capacity(kind, pos)
	if err != nil {
		return err
	}
	if room == 0 {
		a.printf("Nothing attached; a result holds at most %d image(s).\n", results.MaxImages)
		return nil
	}

	// files past the limit are never read, so they cannot fail the command
	files, err := readImages(paths[:min(room, len(paths))])
	if err != nil {
		return err
	}

	a.printf("Uploading %d file(s)...\n", len(files))
	n, err := a.session.AddImages(ctx, kind, pos, files)
	if err != nil {
		return err
	}
	if n < len(paths) {
		a.printf("Attached %d of %d image(s); a result holds at most %d.\n", n, len(paths), results.MaxImages)
		return nil
	}
	a.printf("Attached %d image(s).\n", n)
	return nil
}

func (a *App) RmImg(ctx context.Context, args []string) error {
	const usage = "rmimg <kind> <pos> <imageID>"
	kind, pos, err := parseKindPos(args, usage)
	if err != nil {
		return err
	}
	if len(args) != 3 {
		return errUsage(usage)
	}
	return a.session.RemoveImage(ctx, kind, pos, models.ParseID(args[2]))
}

func (a *App) Rm(ctx context.Context, args []string) error {
	kind, pos, err := parseKindPos(args, "rm <kind> <pos>")
	if err != nil {
		return err
	}
	return a.session.RemoveEntry(ctx, kind, pos)
}

func (a *App) Payload(_ context.Context, _ []string) error {
	p, err := a.session.Payload()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	a.println(string(b))
	return nil
}

func (a *App) Submit(ctx context.Context, _ []string) error {
	p, err := a.session.Payload()
	if err != nil {
		return err
	}
	id := a.session.CaseID()
	if err := a.session.Submit(ctx); err != nil {
		return err
	}
	a.printf("Submitted %d clinical and %d paraclinical result(s) for case %s.\n",
		len(p.ClinicalTests), len(p.ParaclinicalTests), id)
	return nil
}

func (a *App) Discard(ctx context.Context, _ []string) error {
	id := a.session.CaseID()
	if err := a.session.Discard(ctx); err != nil {
		return err
	}
	a.printf("Discarded changes to case %s.\n", id)
	return nil
}

func (a *App) Cats(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage("cats <kind>")
	}
	kind, err := results.ParseKind(args[0])
	if err != nil {
		return err
	}

	list := a.session.Categories(kind)
	if !a.session.Active() {
		if list, err = a.catalog.Lookup(ctx, kind); err != nil {
			return err
		}
	}
	renderCategories(a.out, list)
	return nil
}
