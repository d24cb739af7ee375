package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListValue(t *testing.T) {
	t.Parallel()

	t.Run("empty list stores NULL", func(t *testing.T) {
		t.Parallel()
		v, err := StringList(nil).Value()
		require.NoError(t, err)
		assert.Nil(t, v)

		v, err = StringList{}.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("list stores JSON array", func(t *testing.T) {
		t.Parallel()
		v, err := StringList{"/uploads/news/a.jpg", "/uploads/news/b.jpg"}.Value()
		require.NoError(t, err)
		assert.Equal(t, `["/uploads/news/a.jpg","/uploads/news/b.jpg"]`, v)
	})
}

func TestStringListScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value interface{}
		want  StringList
	}{
		{"nil column", nil, nil},
		{"empty bytes", []byte(""), nil},
		{"native array bytes", []byte(`["a","b"]`), StringList{"a", "b"}},
		{"string value", `["a"]`, StringList{"a"}},
		{"double encoded", []byte(`"[\"a\",\"b\"]"`), StringList{"a", "b"}},
		{"malformed degrades to empty", []byte(`{broken`), nil},
		{"wrong shape degrades to empty", []byte(`{"a":1}`), nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var l StringList
			require.NoError(t, l.Scan(tc.value))
			assert.Equal(t, tc.want, l)
		})
	}

	t.Run("unsupported type errors", func(t *testing.T) {
		t.Parallel()
		var l StringList
		assert.Error(t, l.Scan(42))
	})
}

func TestDocumentListScan(t *testing.T) {
	t.Parallel()

	t.Run("object entries pass through", func(t *testing.T) {
		t.Parallel()
		var l DocumentList
		require.NoError(t, l.Scan([]byte(`[{"name":"Katalog 2024.pdf","url":"/uploads/product-documents/x.pdf"}]`)))
		require.Len(t, l, 1)
		assert.Equal(t, "Katalog 2024.pdf", l[0].Name)
		assert.Equal(t, "/uploads/product-documents/x.pdf", l[0].URL)
	})

	t.Run("legacy bare URLs are normalized", func(t *testing.T) {
		t.Parallel()
		var l DocumentList
		require.NoError(t, l.Scan([]byte(`["https://cdn.example.com/docs/tehnicki-list.pdf","/uploads/product-documents/abc.pdf"]`)))
		require.Len(t, l, 2)
		assert.Equal(t, Document{Name: "tehnicki-list.pdf", URL: "https://cdn.example.com/docs/tehnicki-list.pdf"}, l[0])
		assert.Equal(t, Document{Name: "abc.pdf", URL: "/uploads/product-documents/abc.pdf"}, l[1])
	})

	t.Run("object without name gets one from the URL", func(t *testing.T) {
		t.Parallel()
		var l DocumentList
		require.NoError(t, l.Scan([]byte(`[{"url":"/uploads/product-documents/list.pdf"}]`)))
		require.Len(t, l, 1)
		assert.Equal(t, "list.pdf", l[0].Name)
	})

	t.Run("malformed degrades to empty", func(t *testing.T) {
		t.Parallel()
		var l DocumentList
		require.NoError(t, l.Scan([]byte(`not json`)))
		assert.Empty(t, l)
	})

	t.Run("NULL column", func(t *testing.T) {
		t.Parallel()
		var l DocumentList
		require.NoError(t, l.Scan(nil))
		assert.Nil(t, l)
	})
}

func TestDocumentListValue(t *testing.T) {
	t.Parallel()

	v, err := DocumentList{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = DocumentList{{Name: "a.pdf", URL: "/uploads/product-documents/a.pdf"}}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"a.pdf","url":"/uploads/product-documents/a.pdf"}]`, v.(string))
}

func TestNameFromURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a.pdf", NameFromURL("https://x.example/docs/a.pdf"))
	assert.Equal(t, "a.pdf", NameFromURL("/uploads/docs/a.pdf?v=2"))
	assert.Equal(t, "docs", NameFromURL("https://x.example/docs/"))
	assert.Equal(t, "plain", NameFromURL("plain"))
}
