package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTranslator records its input and returns a fixed output.
type fakeTranslator struct {
	got string
	out string
	err error
}

func (f *fakeTranslator) Translate(_ context.Context, text string) (string, error) {
	f.got = text
	if f.err != nil {
		return "", f.err
	}
	if f.out != "" {
		return f.out, nil
	}
	return text, nil
}

func TestNoopReturnsInput(t *testing.T) {
	out, err := Noop{}.Translate(context.Background(), "saan ang beach")
	require.NoError(t, err)
	assert.Equal(t, "saan ang beach", out)
}

func TestProtectorShieldsPlaceNames(t *testing.T) {
	fake := &fakeTranslator{}
	p := NewProtector(fake, []string{"Puraran", "Twin Rock", "Virac"})

	out := p.Run(context.Background(), "saan ang puraran at Twin Rock?")

	assert.NotContains(t, fake.got, "puraran", "place name must not reach the translator")
	assert.NotContains(t, fake.got, "Twin Rock")
	assert.Contains(t, fake.got, "__PLACE_")

	assert.Contains(t, out, "Puraran")
	assert.Contains(t, out, "Twin Rock")
	assert.NotContains(t, out, "__PLACE_")
}

func TestProtectorTranslationFailureKeepsOriginal(t *testing.T) {
	fake := &fakeTranslator{err: assert.AnError}
	p := NewProtector(fake, []string{"Puraran"})

	out := p.Run(context.Background(), "saan ang Puraran beach")
	assert.Equal(t, "saan ang Puraran beach", out)
}

func TestProtectorEmptyInput(t *testing.T) {
	p := NewProtector(&fakeTranslator{}, []string{"Puraran"})
	assert.Equal(t, "  ", p.Run(context.Background(), "  "))
}

func TestGoogleTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate_a/single", r.URL.Path)
		assert.Equal(t, "gtx", r.URL.Query().Get("client"))
		assert.Equal(t, "en", r.URL.Query().Get("tl"))
		w.Write([]byte(`[[["Where is the beach?","saan ang beach?",null,null,1]],null,"tl"]`))
	}))
	defer server.Close()

	g := NewGoogle(WithHost(server.URL))
	out, err := g.Translate(context.Background(), "saan ang beach?")
	require.NoError(t, err)
	assert.Equal(t, "Where is the beach?", out)
}

func TestGoogleTranslateMultiSegment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[["Where is the beach? ","saan ang beach?",null],["How much is it?","magkano?",null]],null,"tl"]`))
	}))
	defer server.Close()

	g := NewGoogle(WithHost(server.URL))
	out, err := g.Translate(context.Background(), "saan ang beach? magkano?")
	require.NoError(t, err)
	assert.Equal(t, "Where is the beach? How much is it?", out)
}

func TestGoogleTranslateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := NewGoogle(WithHost(server.URL))
	_, err := g.Translate(context.Background(), "saan ang beach?")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "429"))
}

func TestGoogleTranslateMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	g := NewGoogle(WithHost(server.URL))
	_, err := g.Translate(context.Background(), "saan ang beach?")
	assert.Error(t, err)
}
