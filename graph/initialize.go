package graph

import (
	"os"
	"runtime"
	"sort"
	"strconv"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"
)

// getOptimalWorkerCount picks a worker-pool size for parallel file parsing.
// Same formula the teacher uses for callgraph construction: leave headroom
// for the OS, cap at 16 (diminishing returns), respect an env override.
func getOptimalWorkerCount() int {
	if envWorkers := os.Getenv("GUARDRAIL_MAX_WORKERS"); envWorkers != "" {
		if count, err := strconv.Atoi(envWorkers); err == nil && count > 0 {
			if count > 32 {
				count = 32
			}
			return count
		}
	}

	workers := int(float64(runtime.NumCPU()) * 0.75)
	if workers < 2 {
		workers = 2
	}
	if workers > 16 {
		workers = 16
	}
	return workers
}

// DiscoverFiles implements parser frontend contract: given a
// root path and scan configuration, produce an ordered sequence of parsed
// source units. Unreadable or unparseable files are skipped silently (and
// logged at debug level by the caller); a file that parses to an empty
// program is also skipped. Parsing is sharded across a worker pool
// and the result is
// sorted back into deterministic absolute-path order before being returned,
// so edge-insertion order downstream never depends on goroutine scheduling.
func DiscoverFiles(root string, cfg ScanConfig) ([]*SourceFile, []string) {
	paths, err := collectPHPFiles(root, cfg)
	if err != nil {
		return nil, []string{err.Error()}
	}

	type job struct {
		index int
		path  string
	}
	type result struct {
		index int
		file  *SourceFile
		skip  string
	}

	jobs := make(chan job, len(paths))
	results := make(chan result, len(paths))

	numWorkers := getOptimalWorkerCount()
	if numWorkers > len(paths) && len(paths) > 0 {
		numWorkers = len(paths)
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parser := sitter.NewParser()
			defer parser.Close()
			parser.SetLanguage(php.GetLanguage())

			for j := range jobs {
				source, err := readFile(j.path)
				if err != nil {
					results <- result{index: j.index, skip: j.path + ": " + err.Error()}
					continue
				}

				tree, err := parser.ParseCtx(nil, nil, source)
				if err != nil || tree == nil || tree.RootNode() == nil {
					results <- result{index: j.index, skip: j.path + ": parse error"}
					continue
				}
				if tree.RootNode().NamedChildCount() == 0 {
					results <- result{index: j.index, skip: j.path + ": empty program"}
					continue
				}

				results <- result{index: j.index, file: &SourceFile{
					Path:   j.path,
					Source: source,
					Tree:   tree,
				}}
			}
		}()
	}

	for i, p := range paths {
		jobs <- job{index: i, path: p}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([]*result, len(paths))
	for r := range results {
		rr := r
		ordered[rr.index] = &rr
	}

	files := make([]*SourceFile, 0, len(paths))
	var skipped []string
	for _, r := range ordered {
		if r.file != nil {
			files = append(files, r.file)
		} else {
			skipped = append(skipped, r.skip)
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, skipped
}
