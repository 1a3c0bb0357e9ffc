// FILE: lixenwraith/settings/example/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/settings"
)

func main() {
	dir, err := os.MkdirTemp("", "settings-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "settings.yaml")

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	s, err := settings.NewBuilder().
		WithFile(path).
		WithLogger(logger).
		WithoutEnv().
		Build()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}
	defer s.Close()

	// Components subscribe to the options they render
	sub := s.Subscribe(settings.SectionAppearance, settings.Wildcard, func(ev settings.ChangeEvent) {
		log.Printf("appearance changed: %s", ev)
	})
	defer sub.Unsubscribe()

	s.OnLanguageChange(func(code string) {
		log.Printf("loading language pack %q", code)
	})

	if err := s.Set(settings.SectionAppearance, "highlight_thickness", 5); err != nil {
		log.Fatal(err)
	}

	// Rejected: out of range, nothing changes and no event fires
	if err := s.Set(settings.SectionAppearance, "highlight_thickness", 0); err != nil {
		log.Printf("rejected: %v", err)
	}

	if err := s.Set(settings.SectionApplication, "language", "fr"); err != nil {
		log.Fatal(err)
	}

	if err := s.Save(); err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("--- %s ---\n%s", path, data)

	if err := s.ResetSection(settings.SectionAppearance); err != nil {
		log.Fatal(err)
	}

	appearance, err := s.Appearance()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("after reset: theme=%s highlight_thickness=%d language=%s\n",
		appearance.Theme, appearance.HighlightThickness, s.Language())
}
