package locale

import "testing"

func TestCurrentDefaultsToFrench(t *testing.T) {
	msgs := Current()
	if msgs.Name != "fr" {
		t.Errorf("default catalog = %q, want fr", msgs.Name)
	}
	if msgs.Yes != "Oui" || msgs.No != "Non" {
		t.Errorf("French equality literals = %q/%q, want Oui/Non", msgs.Yes, msgs.No)
	}
}

func TestSet(t *testing.T) {
	t.Cleanup(func() { Set("fr") })

	tests := []struct {
		name     string
		lang     string
		wantOK   bool
		wantName string
	}{
		{"english", "en", true, "en"},
		{"french", "fr", true, "fr"},
		{"unknown keeps current", "de", false, "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := Set(tt.lang)
			if ok != tt.wantOK {
				t.Errorf("Set(%q) = %v, want %v", tt.lang, ok, tt.wantOK)
			}
			if got := Current().Name; got != tt.wantName {
				t.Errorf("Current().Name = %q, want %q", got, tt.wantName)
			}
		})
	}
}

// TestCatalogsAreComplete guards against a new message being added to one
// catalog but forgotten in the other.
func TestCatalogsAreComplete(t *testing.T) {
	for _, catalog := range []Catalog{French, English} {
		if catalog.Yes == "" || catalog.No == "" ||
			catalog.DescSyntaxError == "" || catalog.DescEvaluationError == "" ||
			catalog.EmptyExpression == "" || catalog.InvalidExpression == "" ||
			catalog.OperationNotFound == "" || catalog.DivisionByZero == "" ||
			catalog.ZeroPowerZero == "" || catalog.NegativeBasePower == "" ||
			catalog.UnsupportedOperation == "" || catalog.BannerTitle == "" ||
			catalog.Prompt == "" || catalog.Goodbye == "" || catalog.HelpHeader == "" {
			t.Errorf("catalog %q has empty messages", catalog.Name)
		}
	}
}
