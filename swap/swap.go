package swap

import (
	"context"
	"fmt"

	"github.com/quackswap/quack/nxt"
	"go.uber.org/zap"
)

// Ledger is the node surface the protocol engine and the scanner depend on.
// *nxt.Client implements it.
type Ledger interface {
	CurrentHeight(ctx context.Context) (int64, error)
	AccountID(ctx context.Context, secret string) (string, error)
	CreateTrigger(ctx context.Context, recipient, secret string, deadline int64, amountNQT int64, message string) (nxt.UnsignedTransaction, error)
	CreatePhasedPayment(ctx context.Context, recipient, secret string, phasing nxt.Phasing, amountNQT int64, message, encryptedMessage string) (string, error)
	CreatePhasedAssetTransfer(ctx context.Context, recipient, secret string, phasing nxt.Phasing, assetID string, quantityQNT int64, message, encryptedMessage string) (string, error)
	CreatePhasedCurrencyTransfer(ctx context.Context, recipient, secret string, phasing nxt.Phasing, currencyID string, units int64, message, encryptedMessage string) (string, error)
	SignTransaction(ctx context.Context, unsignedBytes, secret string) (string, error)
	BroadcastTransaction(ctx context.Context, signedBytes string) (string, error)
	ParseTransaction(ctx context.Context, transactionBytes string) (nxt.Transaction, error)
	AccountTransactions(ctx context.Context, account string, timestamp int64) ([]nxt.Transaction, error)
}

// Config is the process-wide protocol configuration, fixed at startup.
type Config struct {
	// TriggerAccount receives every trigger's fee payment. Announcements
	// whose trigger pays anyone else are rejected during scanning.
	TriggerAccount string
	// TriggerFeeNQT is the minimum payment a trigger must carry.
	TriggerFeeNQT int64
	// TriggerDeadline is the trigger transaction's own deadline in minutes,
	// independent of the swap deadline.
	TriggerDeadline int64
}

// Engine owns the swap handshake: Initiate, Accept and Trigger. It submits
// transactions through the ledger client and never retries or cancels; a leg
// that fails to submit is the scanner's job to surface.
type Engine struct {
	client Ledger
	cfg    Config
	logger *zap.Logger
}

func NewEngine(client Ledger, cfg Config, logger *zap.Logger) *Engine {
	return &Engine{client: client, cfg: cfg, logger: logger}
}

// InitiateResult carries what the initiator must retain to later commit the
// swap via Trigger.
type InitiateResult struct {
	TriggerHash  string `json:"triggerHash"`
	TriggerBytes string `json:"triggerBytes"`
}

// swapDeadline computes the per-leg deadline in blocks. The trigger must be
// observable early enough under finish that every phased leg can still
// finalize before it expires.
func swapDeadline(current, finish int64) (int64, error) {
	rest := finish - current
	if rest <= 0 {
		return 0, ErrTooShortPeriod
	}
	deadline := rest / 2
	if deadline < 3 {
		deadline = 3
	}
	if deadline+1 > rest {
		return 0, ErrTooShortPeriod
	}
	return deadline, nil
}

// Initiate builds the trigger transaction and submits one phased leg per
// offered asset, all gated on the trigger's full hash. The first submitted
// leg carries the swap announcement and the caller's private message; every
// other leg carries the bare protocol tag. Legs whose submission returns no
// transaction id are skipped without rollback.
func (e *Engine) Initiate(ctx context.Context, secret, recipient string, finishHeight int64, offered, expected []Asset, privateMessage string) (InitiateResult, error) {
	current, err := e.client.CurrentHeight(ctx)
	if err != nil {
		return InitiateResult{}, err
	}
	deadline, err := swapDeadline(current, finishHeight)
	if err != nil {
		return InitiateResult{}, err
	}

	sender, err := e.client.AccountID(ctx, secret)
	if err != nil {
		return InitiateResult{}, err
	}

	trigger, err := e.client.CreateTrigger(ctx, e.cfg.TriggerAccount, secret, e.cfg.TriggerDeadline, e.cfg.TriggerFeeNQT, TriggerMessage())
	if err != nil {
		return InitiateResult{}, err
	}
	if trigger.FullHash == "" || trigger.UnsignedBytes == "" {
		return InitiateResult{}, ErrMissingTransactionArtifact
	}

	phasing := nxt.Phasing{
		LinkedFullHash: trigger.FullHash,
		Deadline:       deadline,
		FinishHeight:   finishHeight,
	}

	count := 0
	for _, a := range offered {
		if a.ID == nil {
			continue
		}

		message := LegMessage()
		encrypted := ""
		if count == 0 {
			message, err = AnnouncementMessage(sender, recipient, trigger.UnsignedBytes, offered, expected)
			if err != nil {
				return InitiateResult{}, err
			}
			encrypted = privateMessage
		}

		txid, err := e.submitLeg(ctx, recipient, secret, phasing, a, message, encrypted)
		if err != nil {
			return InitiateResult{}, err
		}
		if txid == "" {
			e.logger.Warn("leg not submitted", zap.String("asset", *a.ID), zap.String("kind", string(a.Kind)))
			continue
		}
		e.logger.Info("queued transaction", zap.String("txid", txid), zap.Int64("finishHeight", finishHeight))
		count++
	}

	return InitiateResult{TriggerHash: trigger.FullHash, TriggerBytes: trigger.UnsignedBytes}, nil
}

// Accept submits the acceptor's phased legs against a trigger hash received
// out-of-band or recovered by scanning. The acceptor does not re-announce;
// the initiator's announcement is authoritative.
func (e *Engine) Accept(ctx context.Context, secret, recipient string, finishHeight int64, offered []Asset, triggerHash string) error {
	current, err := e.client.CurrentHeight(ctx)
	if err != nil {
		return err
	}
	deadline, err := swapDeadline(current, finishHeight)
	if err != nil {
		return err
	}

	phasing := nxt.Phasing{
		LinkedFullHash: triggerHash,
		Deadline:       deadline,
		FinishHeight:   finishHeight,
	}

	for _, a := range offered {
		if a.ID == nil {
			continue
		}
		txid, err := e.submitLeg(ctx, recipient, secret, phasing, a, LegMessage(), "")
		if err != nil {
			return err
		}
		if txid == "" {
			e.logger.Warn("leg not submitted", zap.String("asset", *a.ID), zap.String("kind", string(a.Kind)))
			continue
		}
		e.logger.Info("queued transaction", zap.String("txid", txid), zap.Int64("finishHeight", finishHeight))
	}
	return nil
}

// Trigger signs and broadcasts the trigger bytes. This is the atomic commit
// point: once the trigger confirms, every leg linked to its hash becomes
// eligible to finalize. If it never confirms, every leg expires unexecuted.
func (e *Engine) Trigger(ctx context.Context, secret, triggerBytes string) (string, error) {
	signed, err := e.client.SignTransaction(ctx, triggerBytes, secret)
	if err != nil {
		return "", err
	}
	if signed == "" {
		return "", fmt.Errorf("signing returned no transaction bytes: %w", ErrRelay)
	}

	txid, err := e.client.BroadcastTransaction(ctx, signed)
	if err != nil {
		return "", err
	}
	if txid == "" {
		return "", fmt.Errorf("broadcast returned no transaction id: %w", ErrRelay)
	}
	return txid, nil
}

func (e *Engine) submitLeg(ctx context.Context, recipient, secret string, phasing nxt.Phasing, a Asset, message, encrypted string) (string, error) {
	switch a.Kind {
	case KindNative:
		return e.client.CreatePhasedPayment(ctx, recipient, secret, phasing, a.Quantity, message, encrypted)
	case KindCurrency:
		return e.client.CreatePhasedCurrencyTransfer(ctx, recipient, secret, phasing, *a.ID, a.Quantity, message, encrypted)
	default:
		return e.client.CreatePhasedAssetTransfer(ctx, recipient, secret, phasing, *a.ID, a.Quantity, message, encrypted)
	}
}
