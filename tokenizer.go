package main

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// Tokenizer estimates token counts for file contents.
type Tokenizer interface {
	CountTokens(text string) int
	Close()
}

type tiktokenTokenizer struct {
	ttk *tiktoken.Tiktoken
}

func (t *tiktokenTokenizer) CountTokens(text string) int {
	if t.ttk == nil {
		return 0
	}
	return len(t.ttk.EncodeOrdinary(text))
}

func (t *tiktokenTokenizer) Close() {}

// newTokenizer builds a tiktoken-backed Tokenizer for the given model name.
func newTokenizer(model string) (Tokenizer, error) {
	if model == "" {
		model = "gpt-4o"
	}
	ttk, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("loading tiktoken encoding for model %s: %w", model, err)
	}
	return &tiktokenTokenizer{ttk: ttk}, nil
}

// countTokens annotates every entry in res with a token estimate using a
// pool of workers, and records the aggregate in the stats. Entry ordering is
// rebuilt afterwards, so the rendered document stays deterministic.
func countTokens(res *ScanResult, tk Tokenizer, workers int) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	entries := res.Entries()
	if len(entries) == 0 {
		return
	}

	jobs := make(chan FileEntry, len(entries))
	results := make(chan FileEntry, len(entries))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go tokenWorker(tk, jobs, results, &wg)
	}
	for _, e := range entries {
		jobs <- e
	}
	close(jobs)
	wg.Wait()
	close(results)

	groups := make(map[string][]FileEntry, len(res.Groups))
	total := 0
	for e := range results {
		groups[e.Dir] = append(groups[e.Dir], e)
		total += e.TokenCount
	}
	for _, g := range groups {
		sortEntries(g)
	}
	res.Groups = groups
	res.Stats.TotalTokens = total
}

func tokenWorker(tk Tokenizer, jobs <-chan FileEntry, results chan<- FileEntry, wg *sync.WaitGroup) {
	defer wg.Done()
	for e := range jobs {
		content, err := os.ReadFile(e.AbsPath)
		if err != nil {
			log.Warnf("could not read %s for token counting: %v", e.RelPath, err)
			e.Err = err
		} else if len(content) > 0 {
			e.TokenCount = tk.CountTokens(string(content))
		}
		results <- e
	}
}
