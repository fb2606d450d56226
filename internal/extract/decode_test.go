package extract

import "testing"

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        []byte
		contentType string
		want        string
	}{
		{name: "utf-8", body: []byte("<p>café</p>"), contentType: "text/html", want: "<p>café</p>"},
		{name: "latin-1 from header", body: []byte("<p>caf\xe9</p>"), contentType: "text/html; charset=iso-8859-1", want: "<p>café</p>"},
		{name: "undeclared invalid bytes dropped", body: []byte("ab\xffc"), contentType: "text/html", want: "abc"},
		{name: "invalid byte with utf-8 header", body: []byte("jo\xffhn@ex.com"), contentType: "text/html; charset=utf-8", want: "john@ex.com"},
		{name: "invalid byte with utf-8 meta", body: []byte("<meta charset=\"utf-8\">jo\xffhn"), contentType: "text/html", want: `<meta charset="utf-8">john`},
		{name: "empty", body: nil, contentType: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := decode(tt.body, tt.contentType); got != tt.want {
				t.Errorf("decode() = %q, want %q", got, tt.want)
			}
		})
	}
}
