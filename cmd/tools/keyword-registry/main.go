// cmd/tools/keyword-registry/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"project-analyzer/pkg/registry"
)

var registryPath string

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	addCmd := flag.NewFlagSet("add", flag.ContinueOnError)
	removeCmd := flag.NewFlagSet("remove", flag.ContinueOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ContinueOnError)

	for _, fs := range []*flag.FlagSet{exportCmd, addCmd, removeCmd, validateCmd} {
		fs.StringVar(&registryPath, "path", "configs/keywords.json", "Path to keyword registry file")
	}

	// Export command flags
	version := exportCmd.String("version", "1.0.0", "Version recorded in the exported file")

	// Add / remove command flags
	setAdd := addCmd.String("set", "", "Keyword set (regenerative or biomimetic)")
	keywordAdd := addCmd.String("keyword", "", "Keyword to add")
	setRemove := removeCmd.String("set", "", "Keyword set (regenerative or biomimetic)")
	keywordRemove := removeCmd.String("keyword", "", "Keyword to remove")

	if len(args) < 1 {
		help()
		return 1
	}

	var err error
	switch args[0] {
	case "export":
		if exportCmd.Parse(args[1:]) != nil {
			return 1
		}
		err = exportRegistry(*version)
		if err == nil {
			fmt.Printf("Exported built-in keywords to %s\n", registryPath)
		}

	case "add":
		if addCmd.Parse(args[1:]) != nil {
			return 1
		}
		if *setAdd == "" || *keywordAdd == "" {
			fmt.Println("Error: set and keyword are required for add.")
			addCmd.Usage()
			return 1
		}
		err = addKeyword(registry.KeywordSet(*setAdd), *keywordAdd)
		if err == nil {
			fmt.Printf("Added %q to %s\n", *keywordAdd, *setAdd)
		}

	case "remove":
		if removeCmd.Parse(args[1:]) != nil {
			return 1
		}
		if *setRemove == "" || *keywordRemove == "" {
			fmt.Println("Error: set and keyword are required for remove.")
			removeCmd.Usage()
			return 1
		}
		err = removeKeyword(registry.KeywordSet(*setRemove), *keywordRemove)
		if err == nil {
			fmt.Printf("Removed %q from %s\n", *keywordRemove, *setRemove)
		}

	case "validate":
		if validateCmd.Parse(args[1:]) != nil {
			return 1
		}
		err = validateRegistry()

	case "help":
		help()
		return 0
	default:
		help()
		return 1
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	return 0
}

func exportRegistry(version string) error {
	file := registry.Default().File()
	file.Version = version
	file.LastUpdated = time.Now().Format(time.RFC3339)
	return registry.SaveRegistry(registryPath, file)
}

func loadFile() (registry.KeywordFile, error) {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return registry.KeywordFile{}, fmt.Errorf("failed to load registry: %w", err)
	}
	return reg.File(), nil
}

func keywordsOf(file *registry.KeywordFile, set registry.KeywordSet) (*[]string, error) {
	switch set {
	case registry.Regenerative:
		return &file.Regenerative, nil
	case registry.Biomimetic:
		return &file.Biomimetic, nil
	}
	return nil, fmt.Errorf("unknown keyword set: %s", set)
}

func addKeyword(set registry.KeywordSet, keyword string) error {
	file, err := loadFile()
	if err != nil {
		return err
	}
	list, err := keywordsOf(&file, set)
	if err != nil {
		return err
	}

	before := len(*list)
	*list = append(*list, keyword)
	reg, err := registry.New(file.Version, file.Regenerative, file.Biomimetic)
	if err != nil {
		return err
	}
	if len(reg.Keywords(set)) == before {
		return fmt.Errorf("keyword %q already present in %s", keyword, set)
	}

	out := reg.File()
	out.LastUpdated = time.Now().Format(time.RFC3339)
	return registry.SaveRegistry(registryPath, out)
}

func removeKeyword(set registry.KeywordSet, keyword string) error {
	file, err := loadFile()
	if err != nil {
		return err
	}
	list, err := keywordsOf(&file, set)
	if err != nil {
		return err
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	kept := (*list)[:0]
	found := false
	for _, k := range *list {
		if k == keyword {
			found = true
			continue
		}
		kept = append(kept, k)
	}
	if !found {
		return fmt.Errorf("keyword %q not found in %s", keyword, set)
	}
	*list = kept

	reg, err := registry.New(file.Version, file.Regenerative, file.Biomimetic)
	if err != nil {
		return err
	}
	out := reg.File()
	out.LastUpdated = time.Now().Format(time.RFC3339)
	return registry.SaveRegistry(registryPath, out)
}

func validateRegistry() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	fmt.Printf("Registry validation passed. Version %s: %d regenerative, %d biomimetic keywords.\n",
		reg.Version(), len(reg.Keywords(registry.Regenerative)), len(reg.Keywords(registry.Biomimetic)))
	return nil
}

func help() {
	fmt.Println(`
Usage: keyword-registry <command> [flags]

Commands:
  export   Write the built-in keyword lists to a registry file
  add      Add a keyword to a set
  remove   Remove a keyword from a set
  validate Validate the registry file
  help     Show this help message

Examples:
  keyword-registry export -path configs/keywords.json
  keyword-registry add -set regenerative -keyword "renaturalización"
  keyword-registry remove -set biomimetic -keyword alas
  keyword-registry validate -path configs/keywords.json

Use 'keyword-registry <command> -h' for more information about a command.`)
}
