package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("disk gone")
	err := Wrap(ErrPlacement, "placing", "move file", "target unavailable", cause)
	if !errors.Is(err, ErrPlacement) {
		t.Fatalf("expected placement marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	for _, fragment := range []string{"placing", "move file", "target unavailable"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("missing %q in %q", fragment, err.Error())
		}
	}
}

func TestWrapNilMarkerDefaultsToService(t *testing.T) {
	err := Wrap(nil, "classifying", "request", "", nil)
	if !errors.Is(err, ErrService) {
		t.Fatalf("expected service marker, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrService, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestMissingFieldNamesField(t *testing.T) {
	err := MissingField("summary_sentence")
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected missing field marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "summary_sentence") {
		t.Fatalf("expected field name in %q", err.Error())
	}
}

func TestIsQuarantine(t *testing.T) {
	if !IsQuarantine(Wrap(ErrUnsupportedType, "extracting", "dispatch", ".png", nil)) {
		t.Fatal("unsupported type should quarantine")
	}
	if !IsQuarantine(ErrEmptyContent) {
		t.Fatal("empty content should quarantine")
	}
	if IsQuarantine(ErrPlacement) {
		t.Fatal("placement failure must not quarantine")
	}
}
