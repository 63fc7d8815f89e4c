package importer

import (
	"fmt"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/mezonai/ledgerkv/block"
	"github.com/mezonai/ledgerkv/common"
	"github.com/mezonai/ledgerkv/errors"
	"github.com/mezonai/ledgerkv/ledger"
	"github.com/mezonai/ledgerkv/logx"
	"github.com/mezonai/ledgerkv/monitoring"
	"github.com/mezonai/ledgerkv/performance"
	"github.com/mezonai/ledgerkv/transaction"
)

// Summary is the outcome of one completed import pass
type Summary struct {
	BlockNumber  uint64
	Transactions uint64
	Operations   uint64
	Report       performance.Report
}

type Option func(im *Importer)

// WithProgressInterval logs and publishes progress every n operations. Zero disables it.
func WithProgressInterval(n uint64) Option {
	return func(im *Importer) { im.progressInterval = n }
}

// Importer replays the full ledger history once, counting blocks, transactions and operations.
// It does not write to the store.
type Importer struct {
	source           ledger.Source
	dumper           *performance.Dumper
	progressInterval uint64
}

func New(source ledger.Source, dumper *performance.Dumper, opts ...Option) *Importer {
	if dumper == nil {
		dumper = performance.NewDumper()
	}
	im := &Importer{
		source: source,
		dumper: dumper,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Run streams the whole history. A source failure aborts the pass and is
// returned as a StreamFailure; no partial summary is produced.
func (im *Importer) Run() (Summary, error) {
	logx.Info("IMPORT", "Starting data import...")

	var progress Progress
	span := im.dumper.Begin()

	err := im.source.ForEachOperation(func(b *block.Block, tx *transaction.Transaction, op *transaction.Operation) bool {
		progress.Observe(b, tx, op)
		if im.progressInterval > 0 && progress.Operations%im.progressInterval == 0 {
			im.logProgress(&progress)
		}
		return true
	})
	if err != nil {
		wrapped := pkgerrors.Wrapf(err, "import aborted at block %d (predecessor %s) after %d operations",
			progress.CurrentBlock, common.ShortID(progress.LastPredecessor), progress.Operations)
		logx.Error("IMPORT", fmt.Sprintf("%+v", wrapped))
		return Summary{}, errors.NewStreamFailure(wrapped)
	}

	report := span.End(progress.CurrentBlock)
	logx.Info("IMPORT", fmt.Sprintf(
		"Data import - Performance report at block %d. Elapsed time: %d ms (real), %d ms (cpu). Memory usage: %d (current), %d (peak) kilobytes.",
		report.BlockNumber, report.RealMs, report.CPUMs, report.CurrentMemKb, report.PeakMemKb))
	logx.Info("IMPORT", fmt.Sprintf(
		"Data import finished. Processed blocks: %d, containing: %d transactions and %d operations.",
		progress.CurrentBlock, progress.Transactions, progress.Operations))

	monitoring.SetImportProgress(progress.CurrentBlock, progress.Transactions, progress.Operations)
	monitoring.RecordImportDuration(time.Duration(report.RealMs) * time.Millisecond)
	monitoring.SetImportPeakMemory(report.PeakMemKb)

	return Summary{
		BlockNumber:  progress.CurrentBlock,
		Transactions: progress.Transactions,
		Operations:   progress.Operations,
		Report:       report,
	}, nil
}

func (im *Importer) logProgress(p *Progress) {
	logx.Info("IMPORT", fmt.Sprintf("Import progress: block %d, %d transactions, %d operations",
		p.CurrentBlock, p.Transactions, p.Operations))
	monitoring.SetImportProgress(p.CurrentBlock, p.Transactions, p.Operations)
}
