package scraper

import (
	"context"
	"fmt"
	"os"
	"testing"

	"medcheck/medcheck/errs"
	"medcheck/medcheck/sources/psql/models"
	"medcheck/medcheck/utils/logging"
)

func TestMain(m *testing.M) {
	logging.InitLogger()
	os.Exit(m.Run())
}

type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	body, ok := f.pages[pageURL]
	if !ok {
		return "", fmt.Errorf("%w: no page for %s", errs.ErrFetch, pageURL)
	}
	return body, nil
}

type fakeConditionStore struct {
	saved    []models.Condition
	failName string
}

func (s *fakeConditionStore) SaveCondition(ctx context.Context, c *models.Condition) error {
	if c.Name == s.failName {
		return fmt.Errorf("insert failed for %s", c.Name)
	}
	s.saved = append(s.saved, *c)
	return nil
}

func conditionPage(name string) string {
	return `<html><body><h1>` + name + `</h1>
<section><h2>Symptoms</h2><p>Symptoms of ` + name + `.</p></section>
<section><h2>Treatment</h2><p>Treatment of ` + name + `.</p></section>
</body></html>`
}

func newFakePipeline(store ConditionStore, pages map[string]string) *Pipeline {
	fetcher := &fakeFetcher{pages: pages}
	s, _ := NewScraper(fetcher, "https://www.nhs.uk/conditions/", "https://www.nhs.uk", "/conditions/")
	return NewPipeline(s, fetcher, store, nil)
}

func TestPipelineRunSavesEachLink(t *testing.T) {
	pages := map[string]string{
		"https://www.nhs.uk/conditions/": `<html><body><ul>
			<a href="/conditions/asthma/">Asthma</a>
			<a href="/conditions/acne/">Acne</a>
		</ul></body></html>`,
		"https://www.nhs.uk/conditions/asthma/": conditionPage("Asthma"),
		"https://www.nhs.uk/conditions/acne/":   conditionPage("Acne"),
	}
	store := &fakeConditionStore{}

	saved, err := newFakePipeline(store, pages).Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if saved != 2 {
		t.Fatalf("expected 2 saved, got %d", saved)
	}
	if store.saved[0].Name != "Asthma" || store.saved[1].Name != "Acne" {
		t.Errorf("unexpected saved records: %+v", store.saved)
	}
	if store.saved[0].Symptoms == "" || store.saved[0].Recommendations == "" {
		t.Errorf("expected populated buckets, got %+v", store.saved[0])
	}
}

func TestPipelineRunHonorsLimit(t *testing.T) {
	pages := map[string]string{
		"https://www.nhs.uk/conditions/": `<html><body><ul>
			<a href="/conditions/one/">One</a>
			<a href="/conditions/two/">Two</a>
			<a href="/conditions/three/">Three</a>
		</ul></body></html>`,
		"https://www.nhs.uk/conditions/one/": conditionPage("One"),
		"https://www.nhs.uk/conditions/two/": conditionPage("Two"),
	}
	store := &fakeConditionStore{}

	saved, err := newFakePipeline(store, pages).Run(context.Background(), 2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if saved != 2 {
		t.Errorf("expected 2 saved with limit 2, got %d", saved)
	}
}

func TestPipelineRunSkipsFailedPages(t *testing.T) {
	pages := map[string]string{
		"https://www.nhs.uk/conditions/": `<html><body><ul>
			<a href="/conditions/good/">Good</a>
			<a href="/conditions/unfetchable/">Unfetchable</a>
			<a href="/conditions/unparsable/">Unparsable</a>
			<a href="/conditions/unsavable/">Unsavable</a>
			<a href="/conditions/also-good/">Also good</a>
		</ul></body></html>`,
		"https://www.nhs.uk/conditions/good/":       conditionPage("Good"),
		"https://www.nhs.uk/conditions/unparsable/": `<html><body><p>no heading</p></body></html>`,
		"https://www.nhs.uk/conditions/unsavable/":  conditionPage("Unsavable"),
		"https://www.nhs.uk/conditions/also-good/":  conditionPage("Also good"),
	}
	store := &fakeConditionStore{failName: "Unsavable"}

	saved, err := newFakePipeline(store, pages).Run(context.Background(), 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if saved != 2 {
		t.Fatalf("expected 2 saved despite failures, got %d", saved)
	}
	if len(store.saved) != 2 {
		t.Fatalf("expected 2 stored records, got %d", len(store.saved))
	}
	if store.saved[0].Name != "Good" || store.saved[1].Name != "Also good" {
		t.Errorf("unexpected stored records: %+v", store.saved)
	}
}

func TestPipelineRunFailsOnLinkEnumeration(t *testing.T) {
	store := &fakeConditionStore{}
	_, err := newFakePipeline(store, map[string]string{}).Run(context.Background(), 10)
	if err == nil {
		t.Fatal("expected error when listing page cannot be fetched")
	}
}
