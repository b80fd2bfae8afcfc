package swap_test

import (
	"context"

	"github.com/quackswap/quack/nxt"
	"github.com/quackswap/quack/swap"
	"go.uber.org/zap"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var testConfig = swap.Config{
	TriggerAccount:  "NXT-G885-AKDX-5G2B-BLUCG",
	TriggerFeeNQT:   nxt.OneNXT,
	TriggerDeadline: 1440,
}

var _ = Describe("Protocol engine", func() {
	var (
		ledger *mockLedger
		engine *swap.Engine
	)

	BeforeEach(func() {
		ledger = &mockLedger{
			height:    100,
			accountRS: "NXT-SEND-ERSS-ENDE-RSEND",
			trigger: nxt.UnsignedTransaction{
				FullHash:      "aabbcc",
				UnsignedBytes: "ff00ff00",
			},
		}
		engine = swap.NewEngine(ledger, testConfig, zap.NewNop())
	})

	Context("deadline arithmetic", func() {
		It("rejects a finish height at or below the current height", func() {
			_, err := engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", 100, []swap.Asset{swap.NativeAsset(10)}, nil, "")
			Expect(err).To(MatchError(swap.ErrTooShortPeriod))

			_, err = engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", 90, []swap.Asset{swap.NativeAsset(10)}, nil, "")
			Expect(err).To(MatchError(swap.ErrTooShortPeriod))
		})

		It("rejects windows too small for the clamped deadline", func() {
			for _, finish := range []int64{101, 102, 103} {
				_, err := engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", finish, []swap.Asset{swap.NativeAsset(10)}, nil, "")
				Expect(err).To(MatchError(swap.ErrTooShortPeriod))
			}
		})

		It("clamps the deadline to 3 for small windows", func() {
			for _, finish := range []int64{104, 105} {
				ledger.legs = nil
				_, err := engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", finish, []swap.Asset{swap.NativeAsset(10)}, nil, "")
				Expect(err).To(BeNil())
				Expect(ledger.legs).To(HaveLen(1))
				Expect(ledger.legs[0].Phasing.Deadline).To(Equal(int64(3)))
			}
		})

		It("uses half the remaining window otherwise", func() {
			_, err := engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", 120, []swap.Asset{swap.NativeAsset(10)}, nil, "")
			Expect(err).To(BeNil())
			Expect(ledger.legs).To(HaveLen(1))
			Expect(ledger.legs[0].Phasing.Deadline).To(Equal(int64(10)))
			Expect(ledger.legs[0].Phasing.FinishHeight).To(Equal(int64(120)))
		})
	})

	Context("initiating a swap", func() {
		var offered, expected []swap.Asset

		BeforeEach(func() {
			offered = []swap.Asset{
				swap.NativeAsset(500),
				swap.TokenAsset("8717394", 10),
				swap.CurrencyAsset("4229784", 25),
			}
			expected = []swap.Asset{swap.NativeAsset(900)}
		})

		It("fails when the trigger artifacts are missing", func() {
			ledger.trigger = nxt.UnsignedTransaction{FullHash: "aabbcc"}
			_, err := engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", 200, offered, expected, "")
			Expect(err).To(MatchError(swap.ErrMissingTransactionArtifact))

			ledger.trigger = nxt.UnsignedTransaction{UnsignedBytes: "ff00"}
			_, err = engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", 200, offered, expected, "")
			Expect(err).To(MatchError(swap.ErrMissingTransactionArtifact))
		})

		It("returns the trigger artifacts on success", func() {
			result, err := engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", 200, offered, expected, "")
			Expect(err).To(BeNil())
			Expect(result.TriggerHash).To(Equal("aabbcc"))
			Expect(result.TriggerBytes).To(Equal("ff00ff00"))
		})

		It("gates every leg on the trigger hash", func() {
			_, err := engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", 200, offered, expected, "")
			Expect(err).To(BeNil())
			Expect(ledger.legs).To(HaveLen(3))
			for _, leg := range ledger.legs {
				Expect(leg.Phasing.LinkedFullHash).To(Equal("aabbcc"))
				Expect(leg.Phasing.FinishHeight).To(Equal(int64(200)))
			}
			Expect(ledger.legs[0].Kind).To(Equal("payment"))
			Expect(ledger.legs[1].Kind).To(Equal("asset"))
			Expect(ledger.legs[2].Kind).To(Equal("currency"))
		})

		It("announces the swap in the first leg only", func() {
			_, err := engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", 200, offered, expected, "see you on-ledger")
			Expect(err).To(BeNil())
			Expect(ledger.legs).To(HaveLen(3))

			first, ok := swap.ParseMessage(ledger.legs[0].Message)
			Expect(ok).To(BeTrue())
			Expect(swap.IsQuack(first)).To(BeTrue())
			bytes, ok := swap.TriggerBytes(first)
			Expect(ok).To(BeTrue())
			Expect(bytes).To(Equal("ff00ff00"))
			Expect(first["sender"]).To(Equal("NXT-SEND-ERSS-ENDE-RSEND"))
			Expect(first["recipient"]).To(Equal("NXT-RECI-PIEN-TREC-IPIEN"))
			Expect(ledger.legs[0].Encrypted).To(Equal("see you on-ledger"))

			for _, leg := range ledger.legs[1:] {
				Expect(leg.Message).To(Equal(`{"quack":1}`))
				Expect(leg.Encrypted).To(Equal(""))
			}
		})

		It("moves the announcement to the first leg that actually submits", func() {
			ledger.legIDs = []string{"", "tx-ok", "tx-ok-2"}
			_, err := engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", 200, offered, expected, "")
			Expect(err).To(BeNil())
			Expect(ledger.legs).To(HaveLen(3))

			_, hasBytes := swap.TriggerBytes(mustParse(ledger.legs[0].Message))
			Expect(hasBytes).To(BeTrue())
			_, hasBytes = swap.TriggerBytes(mustParse(ledger.legs[1].Message))
			Expect(hasBytes).To(BeTrue())
			Expect(ledger.legs[2].Message).To(Equal(`{"quack":1}`))
		})

		It("skips assets without an id", func() {
			_, err := engine.Initiate(context.Background(), "secret", "NXT-RECI-PIEN-TREC-IPIEN", 200, []swap.Asset{
				{Kind: swap.KindToken, Quantity: 5},
				swap.NativeAsset(100),
			}, nil, "")
			Expect(err).To(BeNil())
			Expect(ledger.legs).To(HaveLen(1))
			Expect(ledger.legs[0].Kind).To(Equal("payment"))
		})
	})

	Context("accepting a swap", func() {
		It("submits plain legs against the given trigger hash", func() {
			err := engine.Accept(context.Background(), "secret", "NXT-INIT-IATO-RINI-TIATO", 200, []swap.Asset{
				swap.TokenAsset("8717394", 10),
			}, "deadbeef")
			Expect(err).To(BeNil())
			Expect(ledger.legs).To(HaveLen(1))
			Expect(ledger.legs[0].Phasing.LinkedFullHash).To(Equal("deadbeef"))
			Expect(ledger.legs[0].Message).To(Equal(`{"quack":1}`))
			Expect(ledger.legs[0].Encrypted).To(Equal(""))
		})

		It("applies the same deadline rule", func() {
			err := engine.Accept(context.Background(), "secret", "NXT-INIT-IATO-RINI-TIATO", 100, []swap.Asset{swap.NativeAsset(10)}, "deadbeef")
			Expect(err).To(MatchError(swap.ErrTooShortPeriod))
		})
	})

	Context("triggering a swap", func() {
		It("signs then broadcasts", func() {
			ledger.signedBytes = "signed"
			ledger.broadcastID = "txid-1"
			txid, err := engine.Trigger(context.Background(), "secret", "ff00ff00")
			Expect(err).To(BeNil())
			Expect(txid).To(Equal("txid-1"))
		})

		It("fails when signing yields no bytes", func() {
			ledger.broadcastID = "txid-1"
			_, err := engine.Trigger(context.Background(), "secret", "ff00ff00")
			Expect(err).To(MatchError(swap.ErrRelay))
		})

		It("fails when broadcast yields no id", func() {
			ledger.signedBytes = "signed"
			_, err := engine.Trigger(context.Background(), "secret", "ff00ff00")
			Expect(err).To(MatchError(swap.ErrRelay))
		})
	})
})

func mustParse(raw string) swap.Message {
	msg, ok := swap.ParseMessage(raw)
	Expect(ok).To(BeTrue())
	return msg
}
