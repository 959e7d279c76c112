// Copyright © 2017 Will Rowe <will.rowe@stfc.ac.uk>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/bubblehunt/snpcaller/src/caller"
	"github.com/bubblehunt/snpcaller/src/config"
	"github.com/bubblehunt/snpcaller/src/graph"
	"github.com/bubblehunt/snpcaller/src/misc"
	"github.com/bubblehunt/snpcaller/src/sink"
	"github.com/bubblehunt/snpcaller/src/traversal"
	"github.com/bubblehunt/snpcaller/src/version"
)

// the command line arguments
var (
	graphFile   *string // GFA file holding the pre-built de Bruijn graph
	kmerSize    *int    // k-mer size; 0 infers it from the graph file
	outFile     *string // output file
	fasta       *bool   // write plain FASTA instead of the gob-encoded sink format
	branching   *int    // authorised branching policy (0, 1, or 2)
	traverse    *string // traversal kind: none, unitig, or contig
	threshold   *int    // low-complexity score cutoff
	low         *bool   // also emit bubbles that fail the low-complexity check
)

// the call command (used by cobra)
var callCmd = &cobra.Command{
	Use:   "call",
	Short: "call isolated SNP bubbles from a de Bruijn graph",
	Long:  `Call isolated SNP bubbles from a de Bruijn graph read from a GFA file`,
	Run: func(cmd *cobra.Command, args []string) {
		runCall()
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return misc.CheckRequiredFlags(cmd.Flags())
	},
}

/*
  A function to initialise the command line arguments
*/
func init() {
	RootCmd.AddCommand(callCmd)
	graphFile = callCmd.Flags().StringP("graph", "g", "", "GFA file holding the pre-built de Bruijn graph")
	kmerSize = callCmd.Flags().IntP("kmerSize", "k", 0, "k-mer size (0 infers it from the graph file)")
	outFile = callCmd.Flags().StringP("out", "o", "bubbles.out", "output file")
	fasta = callCmd.Flags().Bool("fasta", false, "write plain two-line FASTA records instead of the gob-encoded sink format")
	branching = callCmd.Flags().IntP("authorised-branching", "b", 1, "branching policy: 0 (strict), 1 (lax), or 2 (none)")
	traverse = callCmd.Flags().StringP("traversal", "t", "unitig", "traversal kind: none, unitig, or contig")
	threshold = callCmd.Flags().IntP("threshold", "x", 100, "low-complexity score cutoff")
	low = callCmd.Flags().Bool("low", false, "also emit bubbles that fail the low-complexity check")
	callCmd.MarkFlagRequired("graph")
}

/*
  A function to check user supplied parameters and build the run configuration
*/
func callParamCheck() (config.Config, error) {
	if err := misc.CheckFile(*graphFile); err != nil {
		return config.Config{}, err
	}
	if err := misc.CheckExt(*graphFile, []string{"gfa"}); err != nil {
		return config.Config{}, err
	}
	var kind traversal.Kind
	switch *traverse {
	case "none":
		kind = traversal.None
	case "unitig":
		kind = traversal.Unitig
	case "contig":
		kind = traversal.Contig
	default:
		return config.Config{}, fmt.Errorf("unknown traversal kind: %v", *traverse)
	}
	if *proc <= 0 || *proc > runtime.NumCPU() {
		*proc = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(*proc)
	cfg := config.Config{
		AuthorisedBranching: *branching,
		TraversalKind:       kind,
		Threshold:           *threshold,
		Low:                 *low,
		NumWorkers:          *proc,
	}
	return cfg, cfg.Validate()
}

/*
  The main function for the call sub-command
*/
func runCall() {
	logFH := misc.StartLogging("snpcaller-call.log")
	defer logFH.Close()
	log.SetOutput(logFH)
	if *profiling {
		defer profile.Start(profile.ProfilePath("./")).Stop()
	}

	log.Printf("snpcaller %s", version.GetVersion())
	log.Printf("starting the call command")
	log.Printf("checking parameters...")
	cfg, err := callParamCheck()
	misc.ErrorCheck(err)
	log.Printf("\tprocessors: %d", cfg.NumWorkers)
	log.Printf("\tauthorised branching: %d", cfg.AuthorisedBranching)
	log.Printf("\ttraversal kind: %v", cfg.TraversalKind)
	log.Printf("\tlow-complexity threshold: %d", cfg.Threshold)
	log.Printf("\temit low-complexity bubbles: %v", cfg.Low)

	log.Printf("loading graph from %v...", *graphFile)
	g, err := graph.LoadGFAGraph(*graphFile, *kmerSize)
	misc.ErrorCheck(err)
	log.Printf("\tk-mer size: %d", g.KmerSize())
	nodes := g.AllNodes()
	log.Printf("\tnumber of nodes: %d", len(nodes))

	var s sink.Sink
	if *fasta {
		fastaSink, err := newFastaSink(*outFile)
		misc.ErrorCheck(err)
		defer fastaSink.Close()
		s = fastaSink
	} else {
		gobSink, err := sink.NewGobSink(*outFile)
		misc.ErrorCheck(err)
		defer gobSink.Close()
		s = gobSink
	}

	log.Printf("running the bubble search across %d nodes...", len(nodes))
	misc.ErrorCheck(caller.Run(cfg, g, s, nodes))

	stats := s.Stats()
	log.Printf("finished")
	log.Printf("\tbubbles emitted: %d", stats.NbBubbles)
	log.Printf("\thigh quality: %d, low quality: %d", stats.NbBubblesHigh, stats.NbBubblesLow)
	log.Printf("\twhere_to_extend histogram: %v", stats.NbWhereToExtend)
}

// fastaSink writes plain two-line FASTA records instead of the
// gob-encoded sink format -- the most natural consumable output for an
// isolated bubble caller's allele sequences.
type fastaSink struct {
	sink.Counters
	file   *os.File
	writer *bufio.Writer
}

func newFastaSink(path string) (*fastaSink, error) {
	fh, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("can't create FASTA output file: %v", err)
	}
	return &fastaSink{file: fh, writer: bufio.NewWriter(fh)}, nil
}

func (s *fastaSink) Emit(seq1, seq2 *sink.Sequence, whereToExtend int, highQuality bool) error {
	s.Lock()
	defer s.Unlock()
	if _, err := fmt.Fprintf(s.writer, ">%s %s\n%s\n>%s %s\n%s\n",
		seq1.ID, seq1.Comment, seq1.Seq,
		seq2.ID, seq2.Comment, seq2.Seq); err != nil {
		return fmt.Errorf("can't write FASTA record: %v", err)
	}
	s.RecordLocked(whereToExtend, highQuality)
	return nil
}

func (s *fastaSink) Close() error {
	if err := s.writer.Flush(); err != nil {
		return err
	}
	return s.file.Close()
}
