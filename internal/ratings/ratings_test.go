package ratings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/pollfinder/internal/fetch"
	"github.com/kittclouds/pollfinder/internal/logger"
)

const page = `<html><body><table>
<tr><td class=" pollster" data-mobile="Monmouth University">Monmouth</td>
    <td><div class="gradeText"> A+ </div></td></tr>
<tr><td class="pollster wide" data-mobile="SurveyUSA">SurveyUSA</td>
    <td><div class="gradeText"><span>A</span></div></td></tr>
<tr><td class="pollsterName">ignored</td></tr>
</table></body></html>`

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(page))
	require.NoError(t, err)

	assert.Equal(t, []Rating{
		{Pollster: "Monmouth University", Grade: "A+"},
		{Pollster: "SurveyUSA", Grade: "A"},
	}, got)
}

func TestParseMismatch(t *testing.T) {
	html := `<td class="pollster" data-mobile="Gallup"></td>`
	_, err := Parse(strings.NewReader(html))
	assert.ErrorIs(t, err, ErrMismatch)
}

func TestParseEmpty(t *testing.T) {
	got, err := Parse(strings.NewReader("<html></html>"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	f := fetch.New(fetch.Options{Timeout: 5 * time.Second}, logger.NewLogger(logger.TestConfig()))
	got, err := Fetch(context.Background(), f, srv.URL)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
