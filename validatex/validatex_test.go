package validatex

import (
	"errors"
	"strings"
	"testing"

	"github.com/Abraxas-365/imagetext/errx"
)

type queueSettings struct {
	URL string `validatex:"url"`
}

type settings struct {
	Bucket   string        `validatex:"required"`
	Provider string        `validatex:"required,oneof=textract openai"`
	Port     int           `validatex:"min=1,max=65535"`
	Prefix   string        `validatex:"max=8"`
	Queue    queueSettings `validatex:""`
	ignored  string        `validatex:"required"`
}

func TestValidateAcceptsValidStruct(t *testing.T) {
	s := settings{Bucket: "b", Provider: "openai", Port: 8080, Queue: queueSettings{URL: "https://sqs.us-west-2.amazonaws.com/1/q"}}
	if err := Validate(s); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := Validate(&s); err != nil {
		t.Fatalf("Validate(ptr) error = %v", err)
	}
}

func TestValidateCollectsFailures(t *testing.T) {
	s := settings{Provider: "tesseract", Port: 70000, Prefix: "far-too-long", Queue: queueSettings{URL: "not a url"}}

	err := Validate(s)
	if !errx.IsCode(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}

	var xerr *errx.Error
	errors.As(err, &xerr)
	failures := xerr.Details["fields"].([]FieldError)

	want := []string{"Bucket", "Provider", "Port", "Prefix", "Queue.URL"}
	if len(failures) != len(want) {
		t.Fatalf("got %d failures: %v", len(failures), failures)
	}
	for i, f := range failures {
		if f.Field != want[i] {
			t.Fatalf("failure %d on %s, want %s", i, f.Field, want[i])
		}
	}
	if !strings.Contains(xerr.Message, "Provider failed oneof=textract openai") {
		t.Fatalf("unexpected message: %s", xerr.Message)
	}
}

func TestOptionalFieldsSkipRulesWhenEmpty(t *testing.T) {
	s := settings{Bucket: "b", Provider: "textract", Port: 1}
	if err := Validate(s); err != nil {
		t.Fatalf("empty optional URL should pass: %v", err)
	}
}

func TestUnknownRule(t *testing.T) {
	type bad struct {
		Name string `validatex:"shiny"`
	}
	if err := Validate(bad{Name: "x"}); !errx.IsCode(err, ErrUnknownRule) {
		t.Fatalf("expected ErrUnknownRule, got %v", err)
	}
}

func TestNotStruct(t *testing.T) {
	if err := Validate(42); !errors.Is(err, ErrNotStruct) {
		t.Fatalf("expected ErrNotStruct, got %v", err)
	}
}

func TestCustomRule(t *testing.T) {
	RegisterValidationFunc("png", func(value any, _ string) bool {
		s, _ := value.(string)
		return strings.HasSuffix(s, ".png")
	})
	type file struct {
		Name string `validatex:"png"`
	}
	if err := Validate(file{Name: "a.png"}); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := Validate(file{Name: "a.jpg"}); err == nil {
		t.Fatalf("expected failure for a.jpg")
	}
}
