package nxt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to an NXT-family node over its HTTP API. Every request is a
// URL-encoded form POST to <node>/nxt with a requestType parameter.
type Client struct {
	node   string
	client *http.Client
	logger *zap.Logger
}

func NewClient(node string, logger *zap.Logger) *Client {
	return &Client{
		node:   strings.TrimSuffix(node, "/"),
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

type apiError struct {
	ErrorCode        int    `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}

// call posts the form to the node and unmarshals the reply into out. Node
// level failures (errorDescription in the reply) are returned as errors.
func (c *Client) call(ctx context.Context, requestType string, fields url.Values, out interface{}) error {
	fields.Set("requestType", requestType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.node+"/nxt", strings.NewReader(fields.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach node: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("error reading node reply: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var nodeErr apiError
	if err := json.Unmarshal(body, &nodeErr); err != nil {
		return fmt.Errorf("malformed node reply: %w", err)
	}
	if nodeErr.ErrorDescription != "" {
		return fmt.Errorf("node error %d: %s", nodeErr.ErrorCode, nodeErr.ErrorDescription)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("malformed node reply: %w", err)
		}
	}
	c.logger.Debug("node call", zap.String("requestType", requestType))
	return nil
}

// txResponse is the common shape of the node's transaction-building replies.
type txResponse struct {
	Transaction              string `json:"transaction"`
	FullHash                 string `json:"fullHash"`
	UnsignedTransactionBytes string `json:"unsignedTransactionBytes"`
	TransactionBytes         string `json:"transactionBytes"`
}

func (c *Client) CurrentHeight(ctx context.Context) (int64, error) {
	var status struct {
		NumberOfBlocks int64 `json:"numberOfBlocks"`
	}
	if err := c.call(ctx, "getBlockchainStatus", url.Values{}, &status); err != nil {
		return 0, err
	}
	return status.NumberOfBlocks - 1, nil
}

// AccountID derives the RS address controlled by the given passphrase. The
// node does the derivation; the passphrase never leaves the request.
func (c *Client) AccountID(ctx context.Context, secret string) (string, error) {
	fields := url.Values{}
	fields.Set("secretPhrase", secret)

	var account struct {
		AccountRS string `json:"accountRS"`
	}
	if err := c.call(ctx, "getAccountId", fields, &account); err != nil {
		return "", err
	}
	if account.AccountRS == "" {
		return "", fmt.Errorf("node returned no accountRS")
	}
	return account.AccountRS, nil
}

// CreateTrigger builds an ordinary payment without broadcasting it and
// returns its full hash and unsigned bytes. The transaction is the phasing
// condition for every leg of one swap; it stays off-ledger until Broadcast.
func (c *Client) CreateTrigger(ctx context.Context, recipient, secret string, deadline int64, amountNQT int64, message string) (UnsignedTransaction, error) {
	fields := url.Values{}
	fields.Set("recipient", recipient)
	fields.Set("secretPhrase", secret)
	fields.Set("feeNQT", strconv.FormatInt(OneNXT, 10))
	fields.Set("broadcast", "false")
	fields.Set("deadline", strconv.FormatInt(deadline, 10))
	fields.Set("amountNQT", strconv.FormatInt(amountNQT, 10))
	fields.Set("message", message)
	fields.Set("messageIsText", "true")
	fields.Set("messageIsPrunable", "false")

	var resp txResponse
	if err := c.call(ctx, "sendMoney", fields, &resp); err != nil {
		return UnsignedTransaction{}, err
	}
	return UnsignedTransaction{FullHash: resp.FullHash, UnsignedBytes: resp.UnsignedTransactionBytes}, nil
}

// phasingFields encodes the by-transaction voting model: the leg executes iff
// the linked full hash confirms before the finish height, quorum 1.
func phasingFields(fields url.Values, recipient, secret string, phasing Phasing, message, encryptedMessage string) {
	fields.Set("recipient", recipient)
	fields.Set("secretPhrase", secret)
	fields.Set("feeNQT", strconv.FormatInt(2*OneNXT, 10))
	fields.Set("broadcast", "true")
	fields.Set("deadline", strconv.FormatInt(phasing.Deadline, 10))
	fields.Set("phased", "true")
	fields.Set("phasingVotingModel", "4")
	fields.Set("phasingQuorum", "1")
	fields.Set("phasingLinkedFullHash", phasing.LinkedFullHash)
	fields.Set("phasingFinishHeight", strconv.FormatInt(phasing.FinishHeight, 10))
	fields.Set("message", message)
	fields.Set("messageIsText", "true")
	fields.Set("messageIsPrunable", "false")
	if encryptedMessage != "" {
		fields.Set("messageToEncrypt", encryptedMessage)
		fields.Set("messageToEncryptIsText", "true")
	}
}

// CreatePhasedPayment submits one native-coin swap leg. An empty transaction
// id with a nil error means the node accepted the request but returned no id;
// callers treat that as a skipped leg.
func (c *Client) CreatePhasedPayment(ctx context.Context, recipient, secret string, phasing Phasing, amountNQT int64, message, encryptedMessage string) (string, error) {
	fields := url.Values{}
	phasingFields(fields, recipient, secret, phasing, message, encryptedMessage)
	fields.Set("amountNQT", strconv.FormatInt(amountNQT, 10))

	var resp txResponse
	if err := c.call(ctx, "sendMoney", fields, &resp); err != nil {
		return "", err
	}
	return resp.Transaction, nil
}

// CreatePhasedAssetTransfer submits one token swap leg.
func (c *Client) CreatePhasedAssetTransfer(ctx context.Context, recipient, secret string, phasing Phasing, assetID string, quantityQNT int64, message, encryptedMessage string) (string, error) {
	fields := url.Values{}
	phasingFields(fields, recipient, secret, phasing, message, encryptedMessage)
	fields.Set("asset", assetID)
	fields.Set("quantityQNT", strconv.FormatInt(quantityQNT, 10))

	var resp txResponse
	if err := c.call(ctx, "transferAsset", fields, &resp); err != nil {
		return "", err
	}
	return resp.Transaction, nil
}

// CreatePhasedCurrencyTransfer submits one monetary-system currency swap leg.
func (c *Client) CreatePhasedCurrencyTransfer(ctx context.Context, recipient, secret string, phasing Phasing, currencyID string, units int64, message, encryptedMessage string) (string, error) {
	fields := url.Values{}
	phasingFields(fields, recipient, secret, phasing, message, encryptedMessage)
	fields.Set("currency", currencyID)
	fields.Set("units", strconv.FormatInt(units, 10))

	var resp txResponse
	if err := c.call(ctx, "transferCurrency", fields, &resp); err != nil {
		return "", err
	}
	return resp.Transaction, nil
}

// SignTransaction signs unsigned transaction bytes on the node and returns
// the signed bytes, or "" if the node reply carried none.
func (c *Client) SignTransaction(ctx context.Context, unsignedBytes, secret string) (string, error) {
	fields := url.Values{}
	fields.Set("unsignedTransactionBytes", unsignedBytes)
	fields.Set("secretPhrase", secret)

	var resp txResponse
	if err := c.call(ctx, "signTransaction", fields, &resp); err != nil {
		return "", err
	}
	return resp.TransactionBytes, nil
}

// BroadcastTransaction relays signed transaction bytes and returns the
// transaction id, or "" if the node reply carried none.
func (c *Client) BroadcastTransaction(ctx context.Context, signedBytes string) (string, error) {
	fields := url.Values{}
	fields.Set("transactionBytes", signedBytes)

	var resp txResponse
	if err := c.call(ctx, "broadcastTransaction", fields, &resp); err != nil {
		return "", err
	}
	return resp.Transaction, nil
}

// ParseTransaction asks the node to decode raw transaction bytes. It fails if
// the bytes do not form a valid transaction.
func (c *Client) ParseTransaction(ctx context.Context, transactionBytes string) (Transaction, error) {
	fields := url.Values{}
	fields.Set("transactionBytes", transactionBytes)

	var tx Transaction
	if err := c.call(ctx, "parseTransaction", fields, &tx); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// AccountTransactions returns the account's confirmed transactions with their
// attachments, newest first, down to the given NXT epoch timestamp.
func (c *Client) AccountTransactions(ctx context.Context, account string, timestamp int64) ([]Transaction, error) {
	fields := url.Values{}
	fields.Set("account", account)
	fields.Set("timestamp", strconv.FormatInt(timestamp, 10))
	fields.Set("withMessage", "false")

	var resp struct {
		Transactions []Transaction `json:"transactions"`
	}
	if err := c.call(ctx, "getBlockchainTransactions", fields, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}
