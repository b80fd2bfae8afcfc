package swap

import (
	"context"
	"sort"
	"strconv"

	"github.com/quackswap/quack/nxt"
	"go.uber.org/zap"
)

// Leg is one observed phased transfer belonging to a swap.
type Leg struct {
	Tx    nxt.Transaction
	Asset Asset
}

// Record is one swap reconstructed from history, keyed by the trigger's full
// hash. Sender, Recipient and the announced asset lists are only filled from
// an announcement that passed trust verification; callers must check they are
// present before treating a record as a verified swap.
type Record struct {
	TriggerHash     string
	GotTrigger      bool
	MinFinishHeight int64

	Sender       string
	Recipient    string
	TriggerBytes string

	AnnouncedAssets   []Asset
	AnnouncedExpected []Asset

	LegsBySender map[string][]Leg

	// Partitioned views of LegsBySender, populated once Sender/Recipient are
	// known. Buckets matching neither party stay unclassified.
	InitiatorLegs    []Leg
	CounterpartyLegs []Leg
}

// Scanner rebuilds swap records from an account's transaction history. Each
// Scan starts from scratch; nothing persists between calls. Malformed history
// entries are skipped, never fatal.
type Scanner struct {
	client Ledger
	cfg    Config
	logger *zap.Logger
}

func NewScanner(client Ledger, cfg Config, logger *zap.Logger) *Scanner {
	return &Scanner{client: client, cfg: cfg, logger: logger}
}

// Scan reads the account's history down to the given epoch timestamp and
// returns every swap it can infer, ordered by trigger hash.
func (s *Scanner) Scan(ctx context.Context, account string, timestamp int64) ([]*Record, error) {
	txs, err := s.client.AccountTransactions(ctx, account, timestamp)
	if err != nil {
		return nil, err
	}

	lookup := map[string]*Record{}
	for _, tx := range txs {
		s.scanTransaction(ctx, account, tx, lookup)
	}

	records := make([]*Record, 0, len(lookup))
	for _, rec := range lookup {
		partitionLegs(rec)
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].TriggerHash < records[j].TriggerHash })
	return records, nil
}

func record(lookup map[string]*Record, hash string) *Record {
	rec, ok := lookup[hash]
	if !ok {
		rec = &Record{TriggerHash: hash, LegsBySender: map[string][]Leg{}}
		lookup[hash] = rec
	}
	return rec
}

func (s *Scanner) scanTransaction(ctx context.Context, account string, tx nxt.Transaction, lookup map[string]*Record) {
	attach := tx.Attachment
	if attach == nil || attach.Message == "" {
		return
	}
	msg, ok := ParseMessage(attach.Message)
	if !ok {
		s.logger.Debug("skipping unparseable message", zap.String("tx", tx.Transaction))
		return
	}
	if !IsQuack(msg) {
		return
	}

	if IsTrigger(msg) {
		if tx.FullHash == "" {
			return
		}
		record(lookup, tx.FullHash).GotTrigger = true
		return
	}

	// Legs join a swap through their phasing condition. A leg references
	// exactly one trigger; further linked hashes are ignored.
	if len(attach.PhasingLinkedFullHashes) == 0 || attach.PhasingFinishHeight == 0 {
		return
	}
	hash := attach.PhasingLinkedFullHashes[0]
	if hash == "" {
		return
	}
	if tx.SenderRS == "" || tx.RecipientRS == "" {
		return
	}

	rec := record(lookup, hash)
	if rec.MinFinishHeight == 0 || attach.PhasingFinishHeight < rec.MinFinishHeight {
		rec.MinFinishHeight = attach.PhasingFinishHeight
	}

	s.tryUpdateInformation(ctx, account, tx.SenderRS, rec, msg)

	asset, ok := classify(tx)
	if !ok {
		return
	}
	rec.LegsBySender[tx.SenderRS] = append(rec.LegsBySender[tx.SenderRS], Leg{Tx: tx, Asset: asset})
}

// tryUpdateInformation fills a record from an announcement, but only after
// proving the claimed trigger bytes correspond to a real trigger: they must
// parse as a transaction paying at least the trigger fee to the protocol
// account. Once announced assets exist, only announcements sent by the
// scanned account itself may replace them, so a counterparty cannot
// overwrite the initiator's declaration.
func (s *Scanner) tryUpdateInformation(ctx context.Context, account, txSender string, rec *Record, msg Message) {
	triggerBytes, ok := TriggerBytes(msg)
	if !ok {
		return
	}

	if len(rec.AnnouncedAssets) != 0 && txSender != account {
		return
	}

	trigger, err := s.client.ParseTransaction(ctx, triggerBytes)
	if err != nil {
		s.logger.Debug("announcement with unparseable trigger bytes", zap.Error(err))
		return
	}

	fee := int64(0)
	if trigger.AmountNQT != "" {
		fee, _ = strconv.ParseInt(trigger.AmountNQT, 10, 64)
	}
	if fee < s.cfg.TriggerFeeNQT {
		return
	}
	if trigger.RecipientRS == "" || trigger.RecipientRS != s.cfg.TriggerAccount {
		return
	}

	sender, ok := messageString(msg, "sender")
	if !ok {
		return
	}
	recipient, ok := messageString(msg, "recipient")
	if !ok {
		return
	}

	rec.Sender = sender
	rec.Recipient = recipient
	rec.TriggerBytes = triggerBytes
	rec.AnnouncedAssets = messageAssets(msg, "assets")
	rec.AnnouncedExpected = messageAssets(msg, "expected_assets")
}

func partitionLegs(rec *Record) {
	for sender, legs := range rec.LegsBySender {
		if len(legs) == 0 {
			continue
		}
		if sender == rec.Sender {
			rec.InitiatorLegs = append([]Leg(nil), legs...)
		} else if sender == rec.Recipient {
			rec.CounterpartyLegs = append([]Leg(nil), legs...)
		}
	}
}
