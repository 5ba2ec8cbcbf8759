package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><head><title> Best  Pizza in Brooklyn </title><style>body{}</style></head>
<body><nav>Home | About</nav>
<h1>Lucali</h1>
<p>Thin crust,
   candle lit.</p><script>var x = 1;</script>
<footer>© 2024</footer></body></html>`

func TestExtract(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	got := Extract(doc, 0)
	assert.Equal(t, "Best Pizza in Brooklyn\n\nLucali Thin crust, candle lit.", got)
}

func TestExtract_Truncates(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>São Paulo é ótimo</body>"))
	require.NoError(t, err)
	assert.Equal(t, "São P", Extract(doc, 5))
}

func TestReader_Read(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(page))
		case "/pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	r := New(100, 20)
	text, err := r.Read(context.Background(), ts.URL+"/ok")
	require.NoError(t, err)
	assert.Equal(t, "Best Pizza in Brookl", text)

	_, err = r.Read(context.Background(), ts.URL+"/pdf")
	assert.ErrorContains(t, err, "unsupported content type")

	_, err = r.Read(context.Background(), ts.URL+"/missing")
	assert.ErrorContains(t, err, "status 404")
}
