// Command generate-goldens converts every Markdown file in the inputs
// directory and records input, output and metadata as golden files.
package main

import (
	"bytes"
	"crypto/sha256"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/mdgrid"
)

// GoldenMetadata represents the YAML front matter in golden files
// This should match the struct in golden_test.go
type GoldenMetadata struct {
	Name           string `yaml:"name"`
	Width          int    `yaml:"width"`
	Margin         int    `yaml:"margin"`
	Changed        bool   `yaml:"changed"`
	Tables         int    `yaml:"tables"`
	Generated      string `yaml:"generated"`
	Generator      string `yaml:"generator"`
	ChecksumSHA256 string `yaml:"checksum_sha256"`
}

// fence wraps input and output blocks. It is longer than any fence used in
// the inputs so their own code blocks stay intact.
const fence = "~~~~~"

var (
	inDir  = flag.String("in", "testdata/inputs", "Directory of Markdown inputs")
	outDir = flag.String("out", "testdata/goldens", "Output directory")
	width  = flag.Int("width", 30, "Target table width")
	margin = flag.Int("margin", 2, "Fixed column margin")
	strict = flag.Bool("strict", false, "Exit on any warning")
)

func main() {
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory %s: %v", *outDir, err)
	}

	inputs, err := filepath.Glob(filepath.Join(*inDir, "*.md"))
	if err != nil {
		log.Fatalf("Failed to list inputs: %v", err)
	}
	sort.Strings(inputs)

	for _, in := range inputs {
		if err := generateGoldenFile(in); err != nil {
			if *strict {
				log.Fatalf("Failed to generate golden file: %v", err)
			}
			log.Printf("Warning: %v", err)
		}
	}

	log.Printf("Golden file generation complete (%d inputs)", len(inputs))
}

func generateGoldenFile(in string) error {
	data, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", in, err)
	}
	input := string(data)
	if !strings.HasSuffix(input, "\n") {
		input += "\n"
	}
	if strings.Contains(input, fence) {
		return fmt.Errorf("%s contains %q, which would break the golden fences", in, fence)
	}

	name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	outFile := filepath.Join(*outDir, name+".md")
	log.Printf("Generating %s", outFile)

	res := mdgrid.Convert(input, mdgrid.WithTargetWidth(*width), mdgrid.WithFixedMargin(*margin))

	metadata := GoldenMetadata{
		Name:           name,
		Width:          *width,
		Margin:         *margin,
		Changed:        res.Changed,
		Tables:         res.Tables,
		Generated:      time.Now().UTC().Format("2006-01-02"),
		Generator:      "generate-goldens",
		ChecksumSHA256: calculateChecksum(res.Content),
	}

	yamlData, err := yaml.Marshal(&metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlData)
	buf.WriteString("---\n\n")
	writeBlock(&buf, "Input", input)
	buf.WriteString("\n")
	writeBlock(&buf, "Output", res.Content)

	if err := os.WriteFile(outFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", outFile, err)
	}
	return nil
}

func writeBlock(buf *bytes.Buffer, title, body string) {
	buf.WriteString("## " + title + "\n\n")
	buf.WriteString(fence + "markdown\n")
	buf.WriteString(body)
	buf.WriteString(fence + "\n")
}

func calculateChecksum(data string) string {
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
