package keywords

import (
	"context"
	"errors"
	"testing"

	"github.com/jungh5/shcard-ceo-bot/internal/core"
	"github.com/jungh5/shcard-ceo-bot/internal/llm"
)

type fakeCompleter struct {
	response string
	err      error
	prompts  []string
	systems  []string
}

func (f *fakeCompleter) GenerateText(ctx context.Context, prompt string, options llm.Options) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.systems = append(f.systems, options.System)
	return f.response, f.err
}

func TestExtractInsertsAnchor(t *testing.T) {
	fake := &fakeCompleter{response: "페이먼트, 시장 진출"}
	extractor := NewExtractor(fake)

	ks, err := extractor.Extract(context.Background(), "신한카드는 언제 페이먼트 시장에 진출했나요?")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if ks[0] != core.AnchorKeyword {
		t.Errorf("Expected anchor at index 0, got %v", ks)
	}
	if len(ks) != 3 {
		t.Errorf("Expected 3 keywords, got %v", ks)
	}
}

func TestExtractTrimsAndDropsEmptyTokens(t *testing.T) {
	fake := &fakeCompleter{response: " 실적 ,  , 카드 "}
	extractor := NewExtractor(fake)

	ks, err := extractor.Extract(context.Background(), "q")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := core.KeywordSet{core.AnchorKeyword, "실적", "카드"}
	if len(ks) != len(want) {
		t.Fatalf("Expected %v, got %v", want, ks)
	}
	for i := range want {
		if ks[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, ks)
			break
		}
	}
}

func TestExtractPreservesAnchorDuplicate(t *testing.T) {
	// The model already returned the anchor mid-list: the anchor is still
	// placed at index 0 and the mid-list duplicate is not removed.
	fake := &fakeCompleter{response: "실적, " + core.AnchorKeyword + ", 실적 발표"}
	extractor := NewExtractor(fake)

	ks, err := extractor.Extract(context.Background(), "q")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(ks) != 4 {
		t.Fatalf("Expected 4 keywords, got %v", ks)
	}
	if ks[0] != core.AnchorKeyword {
		t.Errorf("Expected anchor at index 0, got %v", ks)
	}
	if ks[2] != core.AnchorKeyword {
		t.Errorf("Expected model-supplied duplicate left in place, got %v", ks)
	}
}

func TestExtractSurfacesModelFailure(t *testing.T) {
	fake := &fakeCompleter{err: errors.New("model unavailable")}
	extractor := NewExtractor(fake)

	_, err := extractor.Extract(context.Background(), "q")
	if err == nil {
		t.Fatal("Expected error when the model call fails")
	}

	var extractionErr *ExtractionError
	if !errors.As(err, &extractionErr) {
		t.Errorf("Expected *ExtractionError, got %T", err)
	}
}

func TestExtractSendsSystemInstruction(t *testing.T) {
	fake := &fakeCompleter{response: "실적"}
	extractor := NewExtractor(fake)

	if _, err := extractor.Extract(context.Background(), "질문"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(fake.prompts) != 1 || fake.prompts[0] != "질문" {
		t.Errorf("Expected the raw query as prompt, got %v", fake.prompts)
	}
	if fake.systems[0] == "" {
		t.Error("Expected a system instruction to be set")
	}
}
