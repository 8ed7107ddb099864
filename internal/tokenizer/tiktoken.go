package tokenizer

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"parley/backend/internal/model"
)

const fallbackEncoding = "cl100k_base"

// Tiktoken counts tokens with the BPE encoding of the hinted model family.
// Unknown models use cl100k_base; if no encoding can be loaded at all the
// heuristic estimate is returned instead.
type Tiktoken struct {
	mu        sync.Mutex
	encodings map[string]*tiktoken.Tiktoken // keyed by model hint; nil means unavailable
	fallback  Heuristic
}

// NewTiktoken installs a loader that reads *.tiktoken rank files from dir.
// The loader is process-wide because tiktoken-go keeps it in a package variable.
func NewTiktoken(dir string) *Tiktoken {
	tiktoken.SetBpeLoader(dirLoader{dir: dir})
	return &Tiktoken{encodings: make(map[string]*tiktoken.Tiktoken)}
}

func (e *Tiktoken) Estimate(messages []model.ChatMessage, modelHint string) int {
	if len(messages) == 0 {
		return 0
	}
	enc := e.encoding(modelHint)
	if enc == nil {
		return e.fallback.Estimate(messages, modelHint)
	}
	total := replyPriming
	for _, m := range messages {
		total += messageOverhead + e.count(enc, string(m.Role)) + e.count(enc, m.Content)
	}
	return total
}

func (e *Tiktoken) count(enc *tiktoken.Tiktoken, s string) int {
	if s == "" {
		return 0
	}
	// Allowing all special tokens keeps Encode from panicking on text that
	// happens to contain one.
	return len(enc.Encode(s, []string{"all"}, nil))
}

func (e *Tiktoken) encoding(modelHint string) *tiktoken.Tiktoken {
	if modelHint == "" {
		modelHint = DefaultModel
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if enc, ok := e.encodings[modelHint]; ok {
		return enc
	}

	enc, err := tiktoken.EncodingForModel(modelHint)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
	}
	if err != nil {
		slog.Warn("Token encoding unavailable, using heuristic estimate", "model", modelHint, "error", err)
		enc = nil
	}
	e.encodings[modelHint] = enc
	return enc
}

// dirLoader resolves tiktoken's BPE file URLs to files of the same base name
// in a local directory.
type dirLoader struct {
	dir string
}

func (l dirLoader) LoadTiktokenBpe(tiktokenBpeFile string) (map[string]int, error) {
	name := path.Base(tiktokenBpeFile)
	f, err := os.Open(filepath.Join(l.dir, name))
	if err != nil {
		return nil, fmt.Errorf("could not open bpe file %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	ranks := make(map[string]int)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed bpe line in %s: %q", name, line)
		}
		token, err := base64.StdEncoding.DecodeString(parts[0])
		if err != nil {
			return nil, fmt.Errorf("malformed bpe token in %s: %w", name, err)
		}
		rank, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("malformed bpe rank in %s: %w", name, err)
		}
		ranks[string(token)] = rank
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read bpe file %s: %w", name, err)
	}
	return ranks, nil
}
