package recipe

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/indaco/recipekit/internal/core"
)

func refs(rs []Reference) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.String()
	}
	return out
}

func TestDefault(t *testing.T) {
	r := Default()

	if r.Name() != "scope-guard" {
		t.Errorf("Name() = %q", r.Name())
	}
	if r.License() != "MIT" {
		t.Errorf("License() = %q", r.License())
	}
	if !slices.Contains(r.Topics(), "p0052") {
		t.Errorf("Topics() = %v", r.Topics())
	}
	if got := refs(r.TestRequires()); !slices.Equal(got, []string{"catch2/2.13.4", "trompeloeil/39"}) {
		t.Errorf("TestRequires() = %v", got)
	}
	if r.Options() != (Options{Unittest: true, EnableCompatHeader: false}) {
		t.Errorf("Options() = %+v", r.Options())
	}
	if r.ConfigurationFile() != "CMakeLists.txt" || r.LicenseFile() != "LICENSE" {
		t.Errorf("files = %q, %q", r.ConfigurationFile(), r.LicenseFile())
	}
}

func TestRecipe_Requirements(t *testing.T) {
	r := Default()

	if got := refs(r.Requirements()); !slices.Equal(got, []string{"catch2/2.13.4", "trompeloeil/39"}) {
		t.Errorf("unittest on: Requirements() = %v", got)
	}

	off := r.WithOptions(Options{Unittest: false})
	if got := off.Requirements(); len(got) != 0 {
		t.Errorf("unittest off: Requirements() = %v", got)
	}

	if !r.Options().Unittest {
		t.Error("WithOptions mutated the original recipe")
	}
}

func TestRecipe_AccessorsReturnCopies(t *testing.T) {
	r := Default()
	topics := r.Topics()
	topics[0] = "changed"
	if r.Topics()[0] == "changed" {
		t.Error("Topics() exposes internal slice")
	}

	tr := r.TestRequires()
	tr[0].Name = "changed"
	if r.TestRequires()[0].Name == "changed" {
		t.Error("TestRequires() exposes internal slice")
	}
}

func TestLoad_YAML(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/r/recipe.yaml", []byte(`name: my-lib
license: Apache-2.0
requires:
  - fmt/10.2.1
options:
  enable_compat_header: true
`))

	r, err := Load(context.Background(), fs, "/r/recipe.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Name() != "my-lib" || r.License() != "Apache-2.0" {
		t.Errorf("got name=%q license=%q", r.Name(), r.License())
	}
	if !r.Options().Unittest {
		t.Error("unset unittest should keep its default (true)")
	}
	if !r.Options().EnableCompatHeader {
		t.Error("enable_compat_header should be true")
	}
	if got := refs(r.Requirements()); !slices.Equal(got, []string{"fmt/10.2.1", "catch2/2.13.4", "trompeloeil/39"}) {
		t.Errorf("Requirements() = %v", got)
	}
}

func TestLoad_TOML(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/r/recipe.toml", []byte(`name = "toml-lib"
version = "1.0.0"
configuration-file = "cmake/Root.txt"

[options]
unittest = false
`))

	r, err := Load(context.Background(), fs, "/r/recipe.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Name() != "toml-lib" || r.PinnedVersion() != "1.0.0" {
		t.Errorf("got name=%q version=%q", r.Name(), r.PinnedVersion())
	}
	if r.Options().Unittest {
		t.Error("unittest should be false")
	}
	if r.ConfigurationFile() != "cmake/Root.txt" {
		t.Errorf("ConfigurationFile() = %q", r.ConfigurationFile())
	}
	if r.License() != "MIT" {
		t.Errorf("License() = %q, want default MIT", r.License())
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		wantSub string
	}{
		{"missing file", "/r/none.yaml", "", "failed to read recipe"},
		{"unknown yaml field", "/r/recipe.yaml", "name: x\nbogus: 1\n", "failed to parse recipe"},
		{"unknown toml field", "/r/recipe.toml", "name = \"x\"\nbogus = 1\n", "failed to parse recipe"},
		{"bad reference", "/r/recipe.yaml", "requires:\n  - nover\n", "invalid package reference"},
		{"empty name", "/r/recipe.yaml", "name: \"\"\n", "name is required"},
		{"unsupported extension", "/r/recipe.json", "{}", "unsupported recipe format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			if tt.content != "" {
				fs.SetFile(tt.path, []byte(tt.content))
			}
			_, err := Load(context.Background(), fs, tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not contain %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	ctx := context.Background()
	fs := core.NewMockFileSystem()

	r, err := LoadOrDefault(ctx, fs, "/empty", "")
	if err != nil {
		t.Fatal(err)
	}
	if r.Name() != "scope-guard" {
		t.Errorf("expected default recipe, got %q", r.Name())
	}

	fs.SetFile("/proj/recipe.yml", []byte("name: found\n"))
	r, err = LoadOrDefault(ctx, fs, "/proj", "")
	if err != nil {
		t.Fatal(err)
	}
	if r.Name() != "found" {
		t.Errorf("expected recipe.yml to be found, got %q", r.Name())
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	ctx := context.Background()
	orig, err := NewBuilder().Name("built").Options(Options{Unittest: false, EnableCompatHeader: true}).Build()
	if err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/out/recipe.yaml", "/out/recipe.toml"} {
		t.Run(path, func(t *testing.T) {
			data, err := Marshal(orig, path)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			fs := core.NewMockFileSystem()
			fs.SetFile(path, data)

			got, err := Load(ctx, fs, path)
			if err != nil {
				t.Fatalf("Load: %v\n%s", err, data)
			}
			if got.Name() != "built" || got.Options() != orig.Options() {
				t.Errorf("got name=%q options=%+v", got.Name(), got.Options())
			}
			if !slices.Equal(refs(got.TestRequires()), refs(orig.TestRequires())) {
				t.Errorf("TestRequires() = %v", refs(got.TestRequires()))
			}
		})
	}
}
