package extract

import (
	"net/url"
	"slices"
	"strings"

	"github.com/nao1215/pagescan/internal/dom"
	"github.com/nao1215/pagescan/internal/match"
	"github.com/nao1215/pagescan/internal/model"
	"github.com/nao1215/pagescan/internal/phone"
)

// jsonLDType is the script type of embedded structured data.
const jsonLDType = "application/ld+json"

// page is the read-only input shared by all steps.
type page struct {
	text string
	tree dom.Tree
	base *url.URL
}

// step fills exactly one field of the result.
type step struct {
	name string
	run  func(p *page, r *model.ExtractionResult)
}

// steps lists the extraction steps in their fixed order.
var steps = []step{
	{name: "meta", run: extractMeta},
	{name: "social", run: extractSocial},
	{name: "emails", run: extractEmails},
	{name: "phones", run: extractPhones},
	{name: "media", run: extractMedia},
}

func extractMeta(p *page, r *model.ExtractionResult) {
	meta := model.Meta{H1s: make([]string, 0)}

	if title, ok := p.tree.First("title"); ok {
		meta.Title = strings.TrimSpace(title.Text())
	}

	for _, m := range p.tree.FindAll("meta", "name") {
		if name, _ := m.Attr("name"); name != "description" {
			continue
		}
		content, _ := m.Attr("content")
		meta.Description = strings.TrimSpace(content)
		break
	}

	for _, h := range p.tree.FindAll("h1", "") {
		meta.H1s = append(meta.H1s, h.StrippedText())
	}

	meta.LinksCount = len(p.tree.FindAll("a", "href"))
	meta.ImagesCount = len(p.tree.FindAll("img", "src"))

	for _, s := range p.tree.FindAll("script", "type") {
		if typ, _ := s.Attr("type"); typ == jsonLDType && s.Text() != "" {
			meta.JSONLDCount++
		}
	}

	r.Meta = meta
}

func extractSocial(p *page, r *model.ExtractionResult) {
	found := make(map[string][]string)
	order := make([]string, 0)

	for _, a := range p.tree.FindAll("a", "href") {
		href := attr(a, "href")
		if href == "" {
			continue
		}
		resolved, ok := resolve(p.base, href)
		if !ok {
			continue
		}
		u, err := url.Parse(resolved)
		if err != nil {
			continue
		}
		for _, domain := range model.MatchSocialDomains(u.Host) {
			if _, seen := found[domain]; !seen {
				order = append(order, domain)
			}
			found[domain] = append(found[domain], resolved)
		}
	}

	for domain, urls := range found {
		r.Social[domain] = sortedUnique(urls)
	}
	r.SocialOrder = order
}

func extractEmails(p *page, r *model.ExtractionResult) {
	emails := match.Emails(p.text)

	for _, a := range p.tree.FindAll("a", "href") {
		if target, ok := match.MailtoTarget(attr(a, "href")); ok {
			emails = append(emails, target)
		}
	}

	for _, text := range visibleText(p.tree) {
		emails = append(emails, match.Emails(text)...)
	}

	for i, e := range emails {
		emails[i] = strings.ToLower(e)
	}
	r.Emails = sortedUnique(emails)
}

func extractPhones(p *page, r *model.ExtractionResult) {
	candidates := match.PhoneCandidates(p.text)
	for _, text := range visibleText(p.tree) {
		candidates = append(candidates, match.PhoneCandidates(text)...)
	}
	r.Phones = sortedUnique(phone.NormalizeAll(candidates))
}

func extractMedia(p *page, r *model.ExtractionResult) {
	media := model.Media{
		Images: make([]string, 0),
		Videos: make([]string, 0),
		Files:  make([]string, 0),
	}

	for _, img := range p.tree.FindAll("img", "src") {
		if u, ok := resolveAttr(p.base, img, "src"); ok {
			media.Images = append(media.Images, stripQuery(u))
		}
	}

	for _, video := range p.tree.FindAll("video", "") {
		if u, ok := resolveAttr(p.base, video, "src"); ok {
			media.Videos = append(media.Videos, stripQuery(u))
		}
		for _, source := range video.FindAll("source", "src") {
			if u, ok := resolveAttr(p.base, source, "src"); ok {
				media.Videos = append(media.Videos, stripQuery(u))
			}
		}
	}

	for _, a := range p.tree.FindAll("a", "href") {
		href := attr(a, "href")
		if !isFileLink(href) {
			continue
		}
		if u, ok := resolve(p.base, href); ok {
			media.Files = append(media.Files, u)
		}
	}

	r.Media = media
}

// visibleText returns the text nodes outside <script> and <style>.
func visibleText(tree dom.Tree) []string {
	nodes := tree.TextNodes()
	texts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.Parent == "script" || n.Parent == "style" {
			continue
		}
		texts = append(texts, n.Text)
	}
	return texts
}

func isFileLink(href string) bool {
	lower := strings.ToLower(href)
	for _, ext := range model.FileExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// attr returns the trimmed value of an attribute.
func attr(e dom.Element, name string) string {
	v, _ := e.Attr(name)
	return strings.TrimSpace(v)
}

func resolveAttr(base *url.URL, e dom.Element, name string) (string, bool) {
	v := attr(e, name)
	if v == "" {
		return "", false
	}
	return resolve(base, v)
}

// resolve makes ref absolute against base.
func resolve(base *url.URL, ref string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(u).String(), true
}

func stripQuery(u string) string {
	before, _, _ := strings.Cut(u, "?")
	return before
}

func sortedUnique(values []string) []string {
	out := slices.Clone(values)
	if out == nil {
		out = make([]string, 0)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
