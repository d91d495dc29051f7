package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/dataflowlabs/k2graph/partition"
)

// edgeFile is k2cli's on-disk representation of an edge partition: the raw
// edge list plus the branching parameter, not a snapshot of the built
// K²-tree (the core deliberately carries no persistence; see spec.md §1
// Non-goals and DESIGN.md). Every subcommand rebuilds the partition from
// this with partition.Build.
type edgeFile struct {
	K     int          `json:"k"`
	Edges []edgeRecord `json:"edges"`
}

type edgeRecord struct {
	Src  int64 `json:"src"`
	Dst  int64 `json:"dst"`
	Attr int64 `json:"attr"`
}

func readEdgesCSV(path string) ([]partition.RawEdge[int64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}

	edges := make([]partition.RawEdge[int64], 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("csv row %d: need at least src,dst columns", i)
		}
		src, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: invalid src %q: %w", i, row[0], err)
		}
		dst, err := strconv.ParseInt(row[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: invalid dst %q: %w", i, row[1], err)
		}
		var attr int64
		if len(row) >= 3 {
			attr, err = strconv.ParseInt(row[2], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("csv row %d: invalid attr %q: %w", i, row[2], err)
			}
		}
		edges = append(edges, partition.RawEdge[int64]{Src: src, Dst: dst, Attr: attr})
	}
	return edges, nil
}

func writeEdgeFile(path string, k int, edges []partition.RawEdge[int64]) error {
	out := edgeFile{K: k, Edges: make([]edgeRecord, len(edges))}
	for i, e := range edges {
		out.Edges[i] = edgeRecord{Src: e.Src, Dst: e.Dst, Attr: e.Attr}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func readEdgeFile(path string) (int, []partition.RawEdge[int64], error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var in edgeFile
	if err := json.NewDecoder(f).Decode(&in); err != nil {
		return 0, nil, fmt.Errorf("decode %s: %w", path, err)
	}

	edges := make([]partition.RawEdge[int64], len(in.Edges))
	for i, e := range in.Edges {
		edges[i] = partition.RawEdge[int64]{Src: e.Src, Dst: e.Dst, Attr: e.Attr}
	}
	return in.K, edges, nil
}

func readActiveIds(path string) ([]partition.VertexId, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read active-ids %s: %w", path, err)
	}

	ids := make([]partition.VertexId, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("active-ids row %d: invalid id %q: %w", i, row[0], err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
