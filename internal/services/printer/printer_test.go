package printer

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xelth-com/ploegwissel/internal/models"
)

var pngLogo = func() string {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, color.RGBA{R: 30, G: 90, B: 160, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}()

func reportDoc() models.Document {
	doc := models.NewDefault(time.Date(2024, 2, 7, 6, 30, 0, 0, time.Local))
	doc.Meta.Operator = "Piet"
	doc.Prod.Stable = models.No
	doc.QA.Deviation = models.Yes
	doc.Tech.OK.Toggle("Zeef")
	doc.Tech.OK.Toggle("Spray dryer")
	doc.Sign.HandoverDone = true
	return doc
}

func TestRenderHTML_EscapesUserInput(t *testing.T) {
	doc := reportDoc()
	doc.Prod.Notes = "<script>alert(1)</script>"
	doc.Meta.Leader = `Els "de baas" O'Neil & co`

	a, err := RenderHTML(doc, `<b>Zuivel</b>`, "", HTMLOptions{})
	require.NoError(t, err)
	html := string(a.HTML)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, html, "<b>Zuivel</b>")
	assert.Contains(t, html, "&lt;b&gt;Zuivel&lt;/b&gt;")
	assert.Contains(t, html, "Els &#34;de baas&#34; O&#39;Neil &amp; co")
}

func TestRenderHTML_Values(t *testing.T) {
	a, err := RenderHTML(reportDoc(), "Zuivelfabriek", "", HTMLOptions{})
	require.NoError(t, err)
	html := string(a.HTML)

	assert.Equal(t, "ploegwissel_2024-02-07_Ochtend", a.Name)
	assert.Contains(t, html, "<title>Ploegwissel_2024-02-07_Ochtend</title>")
	// tri-states
	assert.Contains(t, html, `<span class="k">Stabiel:</span> Nee`)
	assert.Contains(t, html, `<span class="k">Afwijking:</span> Ja`)
	assert.Contains(t, html, `<span class="k">Blokkade:</span> -`)
	// mappings keep display order, none checked renders "-"
	assert.Contains(t, html, `<span class="k">OK:</span> Spray dryer, Zeef`)
	assert.Contains(t, html, `<span class="k">Planning:</span> -`)
	// empty strings
	assert.Contains(t, html, `<span class="k">Ploegleider:</span> -`)
	assert.Contains(t, html, `<span class="k">Besproken:</span> Ja`)
	assert.Contains(t, html, "Hygiëne &amp; Veiligheid")
	assert.Contains(t, html, `class="logo-placeholder">LOGO`)
	assert.NotContains(t, html, "window.print")
}

func TestRenderHTML_CompanyFallback(t *testing.T) {
	a, err := RenderHTML(reportDoc(), "", "", HTMLOptions{})
	require.NoError(t, err)
	assert.Contains(t, string(a.HTML), `<div class="title">Ploegwissel Checklist</div>`)
}

func TestRenderHTML_Logo(t *testing.T) {
	a, err := RenderHTML(reportDoc(), "X", pngLogo, HTMLOptions{AutoPrint: true})
	require.NoError(t, err)
	html := string(a.HTML)

	assert.Contains(t, html, `<img class="logo" src="data:image/png;base64,`)
	assert.NotContains(t, html, "logo-placeholder\">LOGO")
	assert.Contains(t, html, "window.print()")
}

func TestRenderHTML_RejectsUnsafeLogo(t *testing.T) {
	a, err := RenderHTML(reportDoc(), "X", `javascript:alert(1)`, HTMLOptions{})
	require.NoError(t, err)
	html := string(a.HTML)

	assert.NotContains(t, html, "javascript:")
	assert.Contains(t, html, `class="logo-placeholder">LOGO`)
}

func TestRenderHTML_DoesNotAliasDocument(t *testing.T) {
	doc := reportDoc()
	a, err := RenderHTML(doc, "X", "", HTMLOptions{})
	require.NoError(t, err)

	a.Doc.Tech.OK.Toggle("Silos")
	assert.False(t, doc.Tech.OK.Get("Silos"))
}

func TestGenerateReportPDF(t *testing.T) {
	doc := reportDoc()
	doc.Plan.Actions = "Zeef wisselen – na CIP • controleren"

	data, err := GenerateReportPDF(doc, models.DefaultCompanyName, pngLogo)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	// WEBP cannot be embedded, placeholder is drawn instead
	data, err = GenerateReportPDF(doc, "", "data:image/webp;base64,UklGRg==")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestFileSink(t *testing.T) {
	dir := t.TempDir()
	a, err := RenderHTML(reportDoc(), "X", "", HTMLOptions{})
	require.NoError(t, err)

	path, err := FileSink{Dir: filepath.Join(dir, "reports")}.Deliver(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reports", "ploegwissel_2024-02-07_Ochtend.html"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, a.HTML, written)
}

func TestPDFSink(t *testing.T) {
	dir := t.TempDir()
	a, err := RenderHTML(reportDoc(), "X", "", HTMLOptions{})
	require.NoError(t, err)

	path, err := PDFSink{Dir: dir}.Deliver(context.Background(), a)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".pdf"))
}

func TestSink_BlockedSurface(t *testing.T) {
	dir := t.TempDir()
	// a regular file where the output directory should be
	blocker := filepath.Join(dir, "reports")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	a, err := RenderHTML(reportDoc(), "X", "", HTMLOptions{})
	require.NoError(t, err)

	_, err = FileSink{Dir: filepath.Join(blocker, "sub")}.Deliver(context.Background(), a)
	assert.ErrorIs(t, err, ErrPresentationBlocked)
}

func TestBrowserSink_MissingBinary(t *testing.T) {
	a, err := RenderHTML(reportDoc(), "X", "", HTMLOptions{})
	require.NoError(t, err)

	sink := BrowserSink{Dir: t.TempDir(), Bin: filepath.Join(t.TempDir(), "no-such-chrome")}
	_, err = sink.Deliver(context.Background(), a)
	assert.ErrorIs(t, err, ErrPresentationBlocked)
}

func TestNewSink(t *testing.T) {
	s, err := NewSink("", "out", "")
	require.NoError(t, err)
	assert.IsType(t, FileSink{}, s)

	s, err = NewSink(SinkPDF, "out", "")
	require.NoError(t, err)
	assert.IsType(t, PDFSink{}, s)

	s, err = NewSink(SinkBrowser, "out", "/usr/bin/chromium")
	require.NoError(t, err)
	assert.Equal(t, BrowserSink{Dir: "out", Bin: "/usr/bin/chromium"}, s)

	_, err = NewSink("popup", "out", "")
	assert.Error(t, err)
}
