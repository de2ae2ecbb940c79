package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medcheck/medcheck/errs"
)

const listingPage = `<html><body>
<ul class="conditions-list">
	<li><a href="/conditions/asthma/">Asthma</a></li>
	<li><a href="/conditions/asthma/">Asthma (duplicate)</a></li>
	<li><a href="/conditions/acne/">Acne</a></li>
	<li><a href="/about-us/">About us</a></li>
	<li><a href="https://www.nhs.uk/conditions/back-pain/">Back pain</a></li>
</ul>
</body></html>`

func newTestScraper(t *testing.T, handler http.HandlerFunc) (*Scraper, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	s, err := NewScraper(NewHTTPFetcher(0), server.URL, "https://www.nhs.uk", "/conditions/")
	if err != nil {
		t.Fatalf("NewScraper: %v", err)
	}
	return s, server
}

func TestListConditionLinksDedupesAndFilters(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(listingPage))
	})

	links, err := s.ListConditionLinks(context.Background())
	if err != nil {
		t.Fatalf("ListConditionLinks: %v", err)
	}

	want := []string{
		"https://www.nhs.uk/conditions/asthma/",
		"https://www.nhs.uk/conditions/acne/",
		"https://www.nhs.uk/conditions/back-pain/",
	}
	if len(links) != len(want) {
		t.Fatalf("expected %d links, got %d: %v", len(want), len(links), links)
	}
	for i, link := range want {
		if links[i] != link {
			t.Errorf("link %d: expected %q, got %q", i, link, links[i])
		}
	}
}

func TestListConditionLinksMissingMarkupIsEmptyNotFatal(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>maintenance page</p></body></html>`))
	})

	links, err := s.ListConditionLinks(context.Background())
	if err != nil {
		t.Fatalf("expected no error for missing markup, got %v", err)
	}
	if len(links) != 0 {
		t.Errorf("expected zero links, got %v", links)
	}
}

func TestListConditionLinksFetchError(t *testing.T) {
	s, _ := newTestScraper(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := s.ListConditionLinks(context.Background())
	if !errors.Is(err, errs.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
}

func TestParseConditionClassifiesSections(t *testing.T) {
	page := `<html><body>
<h1> Asthma </h1>
<section><h2>Symptoms of asthma</h2><p>Wheezing   and
breathlessness.</p><script>var tracked = true;</script></section>
<section><h3>Treatment</h3><p>Use a reliever inhaler.</p></section>
<section><h2>Self-care tips</h2><p>Avoid triggers.</p></section>
<section><h2>Prevention</h2><p>Take your preventer.</p></section>
<section><h2>When to see a GP</h2><p>Not collected.</p></section>
<section><p>No heading here.</p></section>
</body></html>`

	s := &Scraper{}
	record, err := s.ParseCondition(page)
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}

	if record.Name != "Asthma" {
		t.Errorf("expected name %q, got %q", "Asthma", record.Name)
	}
	wantSymptoms := "Symptoms of asthma Wheezing and breathlessness."
	if record.Symptoms != wantSymptoms {
		t.Errorf("expected symptoms %q, got %q", wantSymptoms, record.Symptoms)
	}
	wantRecs := "Treatment Use a reliever inhaler. Self-care tips Avoid triggers. Prevention Take your preventer."
	if record.Recommendations != wantRecs {
		t.Errorf("expected recommendations %q, got %q", wantRecs, record.Recommendations)
	}
	if strings.Contains(record.Symptoms, "tracked") {
		t.Errorf("script content leaked into symptoms: %q", record.Symptoms)
	}
}

func TestParseConditionHeadingMatchIsCaseInsensitive(t *testing.T) {
	page := `<html><body><h1>Acne</h1>
<section><h2>SYMPTOMS</h2><p>Spots.</p></section>
<section><h2>TREATMENT options</h2><p>Creams.</p></section>
</body></html>`

	s := &Scraper{}
	record, err := s.ParseCondition(page)
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	if !strings.Contains(record.Symptoms, "Spots.") {
		t.Errorf("symptoms missing section text: %q", record.Symptoms)
	}
	if !strings.Contains(record.Recommendations, "Creams.") {
		t.Errorf("recommendations missing section text: %q", record.Recommendations)
	}
}

func TestParseConditionSymptomWinsOverTreatment(t *testing.T) {
	// A heading matching both keyword sets lands in symptoms only.
	page := `<html><body><h1>Flu</h1>
<section><h2>Symptom treatment</h2><p>Rest and fluids.</p></section>
</body></html>`

	s := &Scraper{}
	record, err := s.ParseCondition(page)
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	if !strings.Contains(record.Symptoms, "Rest and fluids.") {
		t.Errorf("expected text in symptoms bucket, got %q", record.Symptoms)
	}
	if record.Recommendations != "" {
		t.Errorf("expected empty recommendations, got %q", record.Recommendations)
	}
}

func TestParseConditionTruncatesAtLimit(t *testing.T) {
	long := strings.Repeat("a", 1500)
	page := `<html><body><h1>Migraine</h1>
<section><h2>Symptoms</h2><p>` + long + `</p></section>
</body></html>`

	s := &Scraper{}
	record, err := s.ParseCondition(page)
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	if len([]rune(record.Symptoms)) != maxFieldChars {
		t.Errorf("expected symptoms truncated to %d chars, got %d", maxFieldChars, len([]rune(record.Symptoms)))
	}
}

func TestParseConditionNoHeadingIsParseError(t *testing.T) {
	s := &Scraper{}
	_, err := s.ParseCondition(`<html><body><p>not a condition page</p></body></html>`)
	if !errors.Is(err, errs.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
