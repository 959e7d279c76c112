package graph

import (
	"fmt"
	"io"
	"os"

	"github.com/bubblehunt/snpcaller/src/kmer"
	"github.com/will-rowe/gfa"
)

// GFAGraph is a Graph backed by a GFA file: each segment is a k-mer and
// each link encodes a k-1 overlap edge. Loading a GFAGraph is reading
// back an already-built graph index, not constructing one -- there is
// no k-mer counting or assembly here, only parsing.
type GFAGraph struct {
	MapGraph
}

// LoadGFAGraph reads fileName and adapts it to the Graph interface. If
// k is 0, the k-mer size is inferred from the length of the first
// segment encountered; otherwise every segment's length is checked
// against the supplied k.
func LoadGFAGraph(fileName string, k int) (*GFAGraph, error) {
	fh, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("graph: can't open gfa file: %v", err)
	}
	defer fh.Close()
	reader, err := gfa.NewReader(fh)
	if err != nil {
		return nil, fmt.Errorf("graph: can't read gfa file: %v", err)
	}
	instance := reader.CollectGFA()
	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("graph: error reading line in gfa file: %v", err)
		}
		if err := line.Add(instance); err != nil {
			return nil, fmt.Errorf("graph: error adding line to gfa instance: %v", err)
		}
	}
	return newGFAGraphFromInstance(instance, k)
}

func newGFAGraphFromInstance(instance *gfa.GFA, k int) (*GFAGraph, error) {
	segments, err := instance.GetSegments()
	if err != nil {
		return nil, fmt.Errorf("graph: could not read segments from gfa instance: %v", err)
	}
	if k == 0 && len(segments) > 0 {
		k = len(segments[0].Sequence)
	}
	g := &GFAGraph{MapGraph: *NewMapGraph(k)}
	for _, segment := range segments {
		seq := segment.Sequence
		if len(seq) != k {
			return nil, fmt.Errorf("graph: segment %q has length %d, expected k-mer size %d", segment.Name, len(seq), k)
		}
		if err := g.AddKmer(seq); err != nil {
			return nil, fmt.Errorf("graph: bad segment %q: %v", segment.Name, err)
		}
	}
	// Links in a de Bruijn GFA are implied by k-1 overlap between
	// present segments; we do not need to read them back since
	// Successors/Predecessors/JointSuccessors derive edges structurally
	// from the node set, exactly as MapGraph does. We still check that
	// every link the file declares is one of those derived edges, to
	// catch a malformed or non-de-Bruijn GFA file early (derived edges
	// the file does not declare are not reported).
	links, err := instance.GetLinks()
	if err != nil {
		return nil, fmt.Errorf("graph: could not read links from gfa instance: %v", err)
	}
	segmentSequence := func(name []byte) []byte {
		for _, s := range segments {
			if string(s.Name) == string(name) {
				return s.Sequence
			}
		}
		return nil
	}
	for _, link := range links {
		from, err := kmer.New(segmentSequence(link.From))
		if err != nil {
			continue
		}
		to, err := kmer.New(segmentSequence(link.To))
		if err != nil {
			continue
		}
		if !containsNode(g.Successors(from), to) {
			return nil, fmt.Errorf("graph: link %s->%s in gfa file is not a valid k-1 overlap", link.From, link.To)
		}
	}
	return g, nil
}

func containsNode(nodes []kmer.Node, n kmer.Node) bool {
	for _, candidate := range nodes {
		if kmer.Equal(candidate, n) {
			return true
		}
	}
	return false
}
