package extract

import (
	"context"
	"reflect"
	"testing"

	"github.com/nao1215/pagescan/internal/model"
)

const acmePage = `<html><head><title> Acme Corp </title>
<meta name="description" content=" We make things. ">
<script type="application/ld+json">{"@type":"Organization"}</script>
<script type="application/ld+json"></script>
<script>var e = "Script@Hidden.io";</script>
</head><body>
<h1> Welcome </h1><h1>Second</h1>
<p>Mail A@B.com and a@b.com or call +1 (415) 555-2671.</p>
<a href="mailto:Sales@Acme.com">sales</a>
<a href="https://instagram.com/foo">ig</a>
<a href="https://instagram.com/foo">ig again</a>
<a href="/about">about</a>
<a href="https://www.facebook.com/acme?ref=1">fb</a>
<a href=" /docs/Guide.PDF ">guide</a>
<img src="/a.png?x=1"><img src="  "><img src="img/b.jpg">
<video src="/v.mp4?t=1"><source src="/v.webm"></video>
</body></html>`

func TestEngine_Extract(t *testing.T) {
	t.Parallel()

	got := New().Extract(context.Background(), []byte(acmePage), "https://acme.test/p", "text/html; charset=utf-8")

	want := &model.ExtractionResult{
		Emails: []string{"a@b.com", "sales@acme.com", "script@hidden.io"},
		Phones: []string{"+14155552671"},
		Meta: model.Meta{
			Title:       "Acme Corp",
			Description: "We make things.",
			H1s:         []string{"Welcome", "Second"},
			LinksCount:  6,
			ImagesCount: 3,
			JSONLDCount: 1,
		},
		Social: map[string][]string{
			"instagram.com": {"https://instagram.com/foo"},
			"facebook.com":  {"https://www.facebook.com/acme?ref=1"},
		},
		Media: model.Media{
			Images: []string{"https://acme.test/a.png", "https://acme.test/img/b.jpg"},
			Videos: []string{"https://acme.test/v.mp4", "https://acme.test/v.webm"},
			Files:  []string{"https://acme.test/docs/Guide.PDF"},
		},
	}

	if !reflect.DeepEqual(got.Emails, want.Emails) {
		t.Errorf("Emails = %v, want %v", got.Emails, want.Emails)
	}
	if !reflect.DeepEqual(got.Phones, want.Phones) {
		t.Errorf("Phones = %v, want %v", got.Phones, want.Phones)
	}
	if !reflect.DeepEqual(got.Meta, want.Meta) {
		t.Errorf("Meta = %+v, want %+v", got.Meta, want.Meta)
	}
	if !reflect.DeepEqual(got.Social, want.Social) {
		t.Errorf("Social = %v, want %v", got.Social, want.Social)
	}
	if wantOrder := []string{"instagram.com", "facebook.com"}; !reflect.DeepEqual(got.SocialOrder, wantOrder) {
		t.Errorf("SocialOrder = %v, want %v", got.SocialOrder, wantOrder)
	}
	if !reflect.DeepEqual(got.Media, want.Media) {
		t.Errorf("Media = %+v, want %+v", got.Media, want.Media)
	}
}

func TestEngine_Extract_ConcurrentMatchesSequential(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seq := New().Extract(ctx, []byte(acmePage), "https://acme.test/p", "text/html")
	for range 20 {
		conc := New(WithConcurrentSteps(true)).Extract(ctx, []byte(acmePage), "https://acme.test/p", "text/html")
		if !reflect.DeepEqual(seq, conc) {
			t.Fatalf("concurrent result differs:\n got %+v\nwant %+v", conc, seq)
		}
	}
}

func TestEngine_Extract_Properties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		body  string
		base  string
		check func(t *testing.T, r *model.ExtractionResult)
	}{
		{
			name: "emails unique after case folding",
			body: "Hi A@B.com and a@b.com",
			base: "https://ex.com/",
			check: func(t *testing.T, r *model.ExtractionResult) {
				if !reflect.DeepEqual(r.Emails, []string{"a@b.com"}) {
					t.Errorf("Emails = %v", r.Emails)
				}
			},
		},
		{
			name: "phone normalized to E.164",
			body: "+1 (415) 555-2671",
			base: "https://ex.com/",
			check: func(t *testing.T, r *model.ExtractionResult) {
				if !reflect.DeepEqual(r.Phones, []string{"+14155552671"}) {
					t.Errorf("Phones = %v", r.Phones)
				}
			},
		},
		{
			name: "h1 text pieces joined without separator",
			body: "<h1>Hello <b>World</b></h1>",
			base: "https://ex.com/",
			check: func(t *testing.T, r *model.ExtractionResult) {
				if !reflect.DeepEqual(r.Meta.H1s, []string{"HelloWorld"}) {
					t.Errorf("H1s = %q", r.Meta.H1s)
				}
			},
		},
		{
			name: "phone separated by nbsp entities",
			body: "<p>Call +1&nbsp;415&nbsp;555&nbsp;2671</p>",
			base: "https://ex.com/",
			check: func(t *testing.T, r *model.ExtractionResult) {
				if !reflect.DeepEqual(r.Phones, []string{"+14155552671"}) {
					t.Errorf("Phones = %v", r.Phones)
				}
			},
		},
		{
			name: "invalid phone candidates dropped",
			body: "order +999 1234 5678 or +12 34 56",
			base: "https://ex.com/",
			check: func(t *testing.T, r *model.ExtractionResult) {
				if len(r.Phones) != 0 {
					t.Errorf("Phones = %v, want none", r.Phones)
				}
			},
		},
		{
			name: "repeated social link listed once",
			body: `<a href="https://instagram.com/foo">a</a><a href="https://instagram.com/foo">b</a>`,
			base: "https://ex.com/p",
			check: func(t *testing.T, r *model.ExtractionResult) {
				if !reflect.DeepEqual(r.Social["instagram.com"], []string{"https://instagram.com/foo"}) {
					t.Errorf("Social = %v", r.Social)
				}
			},
		},
		{
			name: "relative social link resolved against base",
			body: `<a href="/company">us</a>`,
			base: "https://www.linkedin.com/in/someone",
			check: func(t *testing.T, r *model.ExtractionResult) {
				if !reflect.DeepEqual(r.Social["linkedin.com"], []string{"https://www.linkedin.com/company"}) {
					t.Errorf("Social = %v", r.Social)
				}
			},
		},
		{
			name: "substring host match",
			body: `<a href="https://notfacebook.com/x">x</a>`,
			base: "https://acme.test/",
			check: func(t *testing.T, r *model.ExtractionResult) {
				if len(r.Social["facebook.com"]) != 1 {
					t.Errorf("Social = %v", r.Social)
				}
			},
		},
		{
			name: "image query stripped and resolved",
			body: `<img src="/a.png?x=1">`,
			base: "https://ex.com/p",
			check: func(t *testing.T, r *model.ExtractionResult) {
				if !reflect.DeepEqual(r.Media.Images, []string{"https://ex.com/a.png"}) {
					t.Errorf("Images = %v", r.Media.Images)
				}
			},
		},
		{
			name: "media duplicates kept in document order",
			body: `<img src="b.png"><img src="a.png"><img src="b.png">`,
			base: "https://acme.test/",
			check: func(t *testing.T, r *model.ExtractionResult) {
				want := []string{"https://acme.test/b.png", "https://acme.test/a.png", "https://acme.test/b.png"}
				if !reflect.DeepEqual(r.Media.Images, want) {
					t.Errorf("Images = %v", r.Media.Images)
				}
			},
		},
		{
			name: "file links keep query and match case-insensitively",
			body: `<a href="/r.ZIP">z</a><a href="/q.docx">d</a><a href="/p.pdf?dl=1">p</a><a href="/x.doc">x</a>`,
			base: "https://acme.test/",
			check: func(t *testing.T, r *model.ExtractionResult) {
				want := []string{"https://acme.test/r.ZIP", "https://acme.test/q.docx"}
				if !reflect.DeepEqual(r.Media.Files, want) {
					t.Errorf("Files = %v", r.Media.Files)
				}
			},
		},
		{
			name: "script and style text skipped but raw text still scanned",
			body: `<style>/* style@css.io */</style><script>"+1 415 555 2671"</script>`,
			base: "https://acme.test/",
			check: func(t *testing.T, r *model.ExtractionResult) {
				if !reflect.DeepEqual(r.Emails, []string{"style@css.io"}) {
					t.Errorf("Emails = %v", r.Emails)
				}
				if !reflect.DeepEqual(r.Phones, []string{"+14155552671"}) {
					t.Errorf("Phones = %v", r.Phones)
				}
			},
		},
		{
			name: "malformed markup",
			body: `<div><a href="https://youtube.com/watch?v=1"><img src=/x.gif <p>+1 650 253 0000`,
			base: "https://acme.test/",
			check: func(t *testing.T, r *model.ExtractionResult) {
				if len(r.Social["youtube.com"]) != 1 {
					t.Errorf("Social = %v", r.Social)
				}
				if !reflect.DeepEqual(r.Phones, []string{"+16502530000"}) {
					t.Errorf("Phones = %v", r.Phones)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.check(t, New().Extract(context.Background(), []byte(tt.body), tt.base, "text/html"))
		})
	}
}

func TestEngine_Extract_EmptyPage(t *testing.T) {
	t.Parallel()

	r := New().Extract(context.Background(), []byte("<html><body><p>nothing here</p></body></html>"), "https://acme.test/", "text/html")

	if len(r.Emails) != 0 || len(r.Phones) != 0 {
		t.Errorf("expected no contacts, got %v %v", r.Emails, r.Phones)
	}
	if r.HasSocial() {
		t.Errorf("expected no social links, got %v", r.Social)
	}
	if len(r.Media.Images)+len(r.Media.Videos)+len(r.Media.Files) != 0 {
		t.Errorf("expected no media, got %+v", r.Media)
	}
	if r.Meta.LinksCount != 0 || r.Meta.ImagesCount != 0 {
		t.Errorf("expected zero counts, got %+v", r.Meta)
	}
}

func TestEngine_Extract_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, concurrent := range []bool{false, true} {
		r := New(WithConcurrentSteps(concurrent)).Extract(ctx, []byte(acmePage), "https://acme.test/", "text/html")
		if r == nil {
			t.Fatal("Extract() returned nil")
		}
		if len(r.Emails) != 0 {
			t.Errorf("concurrent=%v: steps ran after cancellation: %v", concurrent, r.Emails)
		}
	}
}
