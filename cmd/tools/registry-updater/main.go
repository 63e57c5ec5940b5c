// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"prd-advisors/pkg/registry"
)

const defaultRegistryPath = "configs/advisors.json"

func main() {
	if len(os.Args) < 2 {
		help(os.Stdout)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "init":
		err = runInit(os.Args[2:])
	case "add":
		err = runAdd(os.Args[2:])
	case "update":
		err = runUpdate(os.Args[2:])
	case "validate":
		err = runValidate(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "help":
		help(os.Stdout)
	default:
		help(os.Stdout)
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	force := fs.Bool("force", false, "Overwrite an existing file")
	fs.Parse(args)

	if _, err := os.Stat(*path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", *path)
	}

	reg := &registry.AdvisorRegistry{
		Version:     "1.0.0",
		LastUpdated: time.Now().Format(time.RFC3339),
		Advisors:    registry.DefaultAdvisors(),
	}
	if err := save(*path, reg); err != nil {
		return err
	}
	fmt.Printf("Wrote %d built-in advisors to %s\n", len(reg.Advisors), *path)
	return nil
}

func runAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	key := fs.String("key", "", "Advisor key (e.g., bill)")
	displayName := fs.String("displayName", "", "Display name (e.g., Bill Gates)")
	endpoint := fs.String("endpoint", "", "Chat-completion endpoint URL")
	perspective := fs.String("perspective", "", "Perspective embedded in the prompt")
	expertise := fs.String("expertise", "", "Short expertise label")
	emoji := fs.String("emoji", "", "Section emoji")
	sectionLabel := fs.String("sectionLabel", "", "Heading label in the requirements document")
	insightLabel := fs.String("insightLabel", "", "Heading label in the development prompt")
	fs.Parse(args)

	if *key == "" || *displayName == "" || *endpoint == "" || *perspective == "" {
		fs.Usage()
		return fmt.Errorf("key, displayName, endpoint and perspective are required for add")
	}

	reg, err := registry.LoadRegistry(*path)
	if os.IsNotExist(err) {
		reg = &registry.AdvisorRegistry{Version: "1.0.0"}
	} else if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	for _, existing := range reg.Advisors {
		if existing.Key == *key {
			return fmt.Errorf("advisor with key %s already exists", *key)
		}
	}

	reg.Advisors = append(reg.Advisors, registry.AdvisorDescriptor{
		Key:          *key,
		DisplayName:  *displayName,
		EndpointURL:  *endpoint,
		Perspective:  *perspective,
		Expertise:    *expertise,
		Emoji:        *emoji,
		SectionLabel: *sectionLabel,
		InsightLabel: *insightLabel,
	})
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	if err := save(*path, reg); err != nil {
		return err
	}
	fmt.Printf("Added advisor: %s\n", *key)
	return nil
}

func runUpdate(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	key := fs.String("key", "", "Advisor key to update")
	field := fs.String("field", "", "Field to update (displayName, endpoint, perspective, expertise, emoji, sectionLabel, insightLabel)")
	value := fs.String("value", "", "New value for the field")
	fs.Parse(args)

	if *key == "" || *field == "" || *value == "" {
		fs.Usage()
		return fmt.Errorf("key, field and value are required for update")
	}

	reg, err := registry.LoadRegistry(*path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	idx := -1
	for i := range reg.Advisors {
		if reg.Advisors[i].Key == *key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("advisor with key %s not found", *key)
	}

	a := &reg.Advisors[idx]
	switch *field {
	case "displayName":
		a.DisplayName = *value
	case "endpoint":
		a.EndpointURL = *value
	case "perspective":
		a.Perspective = *value
	case "expertise":
		a.Expertise = *value
	case "emoji":
		a.Emoji = *value
	case "sectionLabel":
		a.SectionLabel = *value
	case "insightLabel":
		a.InsightLabel = *value
	default:
		return fmt.Errorf("unknown field: %s", *field)
	}
	reg.LastUpdated = time.Now().Format(time.RFC3339)

	if err := save(*path, reg); err != nil {
		return err
	}
	fmt.Printf("Updated advisor %s, field %s\n", *key, *field)
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	path := fs.String("path", defaultRegistryPath, "Path to registry file")
	fs.Parse(args)

	r, err := registry.FromFile(*path)
	if err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	fmt.Printf("Registry validation passed. Found %d advisors.\n", r.Len())
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	path := fs.String("path", "", "Path to registry file (built-in panel when empty)")
	fs.Parse(args)

	r, err := registry.FromFile(*path)
	if err != nil {
		return err
	}
	for _, a := range r.Advisors() {
		fmt.Printf("%-8s %s %-16s %s\n", a.Key, a.Emoji, a.DisplayName, a.EndpointURL)
	}
	return nil
}

// save validates reg before writing it, so a broken file is never produced.
func save(path string, reg *registry.AdvisorRegistry) error {
	if _, err := registry.New(reg.Advisors); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := registry.SaveRegistry(path, reg); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}

	// round-trip through the schema
	if _, err := registry.LoadRegistry(path); err != nil {
		return fmt.Errorf("written registry is invalid: %w", err)
	}
	return nil
}

func help(w io.Writer) {
	fmt.Fprint(w, `
Usage: registry-updater <command> [flags]

Commands:
  init     Write the built-in advisory panel to a registry file
  add      Add a new advisor to the registry
  update   Update an existing advisor's field
  validate Validate the registry file
  list     List advisors in canonical order
  help     Show this help message

Examples:
  registry-updater init -path configs/advisors.json
  registry-updater add -key bill -displayName "Bill Gates" -endpoint https://example.gaia.domains/v1/chat/completions -perspective "Software platforms and philanthropy"
  registry-updater update -key bill -field emoji -value 💻
  registry-updater validate -path configs/advisors.json

Use 'registry-updater <command> -h' for more information about a command.
`)
}
