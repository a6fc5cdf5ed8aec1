package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
)

// Output file names inside a bundle directory.
const (
	DOTFile  = "routes.dot"
	JSONFile = "links.json"
	YAMLFile = "links.yaml"
)

// WriteBundle writes the DOT rendering of nodes and links plus report as
// JSON and YAML into dir, creating it when needed. Each file is written to a
// temporary name first so a failed run never leaves a half-written file.
func WriteBundle(dir, title string, nodes []domain.NodeRef, links []domain.LinkDescriptor, report any) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	j, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", JSONFile, err)
	}
	y, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode %s: %w", YAMLFile, err)
	}

	files := []struct {
		name string
		body []byte
	}{
		{DOTFile, []byte(ToDOT(nodes, links, title))},
		{JSONFile, j},
		{YAMLFile, y},
	}
	for _, f := range files {
		if err := writeFileAtomic(filepath.Join(dir, f.name), f.body); err != nil {
			return fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	return nil
}

func writeFileAtomic(path string, body []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Render runs the Graphviz binary over a DOT file. The output format follows
// the extension of outPath (svg when it has none).
func Render(ctx context.Context, dotBin, dotPath, outPath string) error {
	if dotBin == "" {
		dotBin = "dot"
	}
	bin, err := exec.LookPath(dotBin)
	if err != nil {
		return fmt.Errorf("graphviz binary %q not found: %w", dotBin, err)
	}

	format := strings.TrimPrefix(filepath.Ext(outPath), ".")
	if format == "" {
		format = "svg"
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-T"+format, dotPath, "-o", outPath)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
