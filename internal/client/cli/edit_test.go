package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/dmitrijs2005/casekeeper/internal/client/results"
	"github.com/dmitrijs2005/casekeeper/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubImages(t *testing.T) {
	t.Helper()
	orig := readImages
	readImages = func(paths []string) ([]models.ImageFile, error) {
		out := make([]models.ImageFile, len(paths))
		for i, p := range paths {
			out[i] = models.ImageFile{Name: p, ContentType: "image/png", Data: []byte{1}}
		}
		return out, nil
	}
	t.Cleanup(func() { readImages = orig })
}

func TestEditFlow(t *testing.T) {
	stubImages(t)
	api := newFakeAPI()
	app, out := newTestApp(t, api, "")
	ctx := context.Background()

	require.ErrorIs(t, app.Show(ctx, nil), services.ErrSessionNotStarted)

	require.NoError(t, app.Open(ctx, []string{"1"}))
	assert.Contains(t, out.String(), `Opened case 1 "Pulpitis"`)
	assert.Contains(t, out.String(), "[0] Palpation (id 10)")
	assert.Contains(t, out.String(), "result: tender")

	require.NoError(t, app.Add(ctx, []string{"p"}))
	require.NoError(t, app.Set(ctx, []string{"p", "0", "category", "x-ray"}))
	require.NoError(t, app.Set(ctx, []string{"p", "0", "text", "no", "lesions"}))
	require.NoError(t, app.Img(ctx, []string{"p", "0", "a.png", "b.png"}))
	require.NoError(t, app.Rm(ctx, []string{"c", "0"}))

	out.Reset()
	require.NoError(t, app.Payload(ctx, nil))
	assert.Contains(t, out.String(), `"action": "REMOVE"`)
	assert.Contains(t, out.String(), `"textResult": "no lesions"`)
	assert.Contains(t, out.String(), `"up-a.png"`)

	out.Reset()
	require.NoError(t, app.Drafts(ctx, nil))
	assert.Contains(t, out.String(), `case 1 "Pulpitis"`)

	require.NoError(t, app.Submit(ctx, nil))
	require.Len(t, api.submitted, 1)
	p := api.submitted[0]
	require.Len(t, p.ClinicalTests, 1)
	assert.Equal(t, results.Remove, p.ClinicalTests[0].Action)
	require.Len(t, p.ParaclinicalTests, 1)
	assert.Equal(t, models.NumericID(7), p.ParaclinicalTests[0].CategoryID)
	assert.Len(t, p.ParaclinicalTests[0].ImageKeys, 2)
	assert.False(t, app.hasSession())

	out.Reset()
	require.NoError(t, app.Drafts(ctx, nil))
	assert.Contains(t, out.String(), "No saved drafts.")
}

func TestImg_ReportsTruncation(t *testing.T) {
	stubImages(t)
	api := newFakeAPI()
	app, out := newTestApp(t, api, "")
	ctx := context.Background()

	require.NoError(t, app.Open(ctx, []string{"1"}))
	require.NoError(t, app.Img(ctx, []string{"c", "0", "1", "2", "3", "4", "5", "6", "7"}))
	assert.Contains(t, out.String(), "Attached 5 of 7 image(s)")
	assert.Equal(t, results.MaxImages, api.uploads)
}

func TestImg_FilesPastLimitAreNotRead(t *testing.T) {
	dir := t.TempDir()
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)
	var args []string
	for i := range results.MaxImages {
		p := filepath.Join(dir, fmt.Sprintf("scan%d.png", i))
		require.NoError(t, os.WriteFile(p, png, 0o600))
		args = append(args, p)
	}
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("not an image"), 0o600))

	api := newFakeAPI()
	app, out := newTestApp(t, api, "")
	ctx := context.Background()
	require.NoError(t, app.Open(ctx, []string{"1"}))

	require.NoError(t, app.Img(ctx, append([]string{"c", "0"}, append(args, notes)...)))
	assert.Equal(t, results.MaxImages, api.uploads)
	assert.Contains(t, out.String(), fmt.Sprintf("Attached %d of %d image(s)", results.MaxImages, results.MaxImages+1))

	// the entry is full: nothing is read or uploaded
	require.NoError(t, app.Img(ctx, []string{"c", "0", notes}))
	assert.Equal(t, results.MaxImages, api.uploads)
	assert.Contains(t, out.String(), "Nothing attached")
}

func TestResumeAndDiscard(t *testing.T) {
	api := newFakeAPI()
	app, out := newTestApp(t, api, "")
	ctx := context.Background()

	require.NoError(t, app.Open(ctx, []string{"1"}))
	require.NoError(t, app.Set(ctx, []string{"c", "0", "notes", "recheck"}))

	require.NoError(t, app.Resume(ctx, []string{"1"}))
	assert.Contains(t, out.String(), `Resumed draft for case 1 "Pulpitis"`)
	assert.Contains(t, out.String(), "notes:  recheck")

	require.NoError(t, app.Discard(ctx, nil))
	assert.False(t, app.hasSession())
	require.Error(t, app.Resume(ctx, []string{"1"}))
}

func TestCommandUsage(t *testing.T) {
	app, _ := newTestApp(t, newFakeAPI(), "")
	ctx := context.Background()

	var usage errUsage
	require.ErrorAs(t, app.Open(ctx, nil), &usage)
	require.ErrorAs(t, app.Set(ctx, []string{"c", "x", "text"}), &usage)
	require.ErrorAs(t, app.Img(ctx, []string{"c", "0"}), &usage)
	require.ErrorAs(t, app.RmImg(ctx, []string{"c", "0"}), &usage)
	require.ErrorIs(t, app.Add(ctx, []string{"z"}), results.ErrUnknownKind)
}

func TestCats_WithoutSessionUsesCatalog(t *testing.T) {
	app, out := newTestApp(t, newFakeAPI(), "")

	require.NoError(t, app.Cats(context.Background(), []string{"p"}))
	assert.Contains(t, out.String(), "X-ray")
}
