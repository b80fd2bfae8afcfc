package swap_test

import (
	"context"

	"github.com/quackswap/quack/nxt"
	"github.com/quackswap/quack/swap"
	"go.uber.org/zap"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	initiator    = "NXT-SEND-ERSS-ENDE-RSEND"
	counterparty = "NXT-RECI-PIEN-TREC-IPIEN"
	outsider     = "NXT-THIR-DPAR-TYTH-IRDPA"
	triggerHash  = "cafe01"
	triggerBytes = "ff00ff00"
)

// goodTrigger is what the node yields when parsing triggerBytes: a payment of
// the protocol fee to the protocol account.
var goodTrigger = nxt.Transaction{
	AmountNQT:   "100000000",
	RecipientRS: testConfig.TriggerAccount,
}

func triggerTx(hash string) nxt.Transaction {
	return nxt.Transaction{
		FullHash:   hash,
		SenderRS:   initiator,
		Type:       nxt.TypePayment,
		Attachment: &nxt.Attachment{Message: swap.TriggerMessage()},
	}
}

func paymentLeg(sender, recipient, linked string, finishHeight int64, amountNQT string, message string) nxt.Transaction {
	return nxt.Transaction{
		Transaction: "leg-" + sender + "-" + linked,
		SenderRS:    sender,
		RecipientRS: recipient,
		Type:        nxt.TypePayment,
		AmountNQT:   amountNQT,
		Attachment: &nxt.Attachment{
			Message:                 message,
			PhasingLinkedFullHashes: []string{linked},
			PhasingFinishHeight:     finishHeight,
		},
	}
}

func tokenLeg(sender, recipient, linked string, finishHeight int64, assetID, qty string) nxt.Transaction {
	return nxt.Transaction{
		SenderRS:    sender,
		RecipientRS: recipient,
		Type:        nxt.TypeColoredCoins,
		Subtype:     nxt.SubtypeAssetXfer,
		Attachment: &nxt.Attachment{
			Message:                 swap.LegMessage(),
			PhasingLinkedFullHashes: []string{linked},
			PhasingFinishHeight:     finishHeight,
			Asset:                   assetID,
			QuantityQNT:             qty,
		},
	}
}

func announcement(sender, recipient, bytes string, offered, expected []swap.Asset) string {
	msg, err := swap.AnnouncementMessage(sender, recipient, bytes, offered, expected)
	Expect(err).To(BeNil())
	return msg
}

var _ = Describe("Reconstructing swaps from history", func() {
	var (
		ledger  *mockLedger
		scanner *swap.Scanner
	)

	scan := func(account string) []*swap.Record {
		records, err := scanner.Scan(context.Background(), account, 0)
		Expect(err).To(BeNil())
		return records
	}

	BeforeEach(func() {
		ledger = &mockLedger{
			parsed: map[string]nxt.Transaction{triggerBytes: goodTrigger},
		}
		scanner = swap.NewScanner(ledger, testConfig, zap.NewNop())
	})

	It("rebuilds a full swap from a trigger, an announcement and a counter leg", func() {
		offered := []swap.Asset{swap.NativeAsset(500)}
		expected := []swap.Asset{swap.TokenAsset("8717394", 10)}
		ledger.history = []nxt.Transaction{
			triggerTx(triggerHash),
			paymentLeg(initiator, counterparty, triggerHash, 1000, "500",
				announcement(initiator, counterparty, triggerBytes, offered, expected)),
			tokenLeg(counterparty, initiator, triggerHash, 900, "8717394", "10"),
		}

		records := scan(initiator)
		Expect(records).To(HaveLen(1))

		rec := records[0]
		Expect(rec.TriggerHash).To(Equal(triggerHash))
		Expect(rec.GotTrigger).To(BeTrue())
		Expect(rec.MinFinishHeight).To(Equal(int64(900)))
		Expect(rec.Sender).To(Equal(initiator))
		Expect(rec.Recipient).To(Equal(counterparty))
		Expect(rec.TriggerBytes).To(Equal(triggerBytes))
		Expect(rec.AnnouncedAssets).To(Equal(offered))
		Expect(rec.AnnouncedExpected).To(Equal(expected))

		Expect(rec.InitiatorLegs).To(HaveLen(1))
		Expect(rec.InitiatorLegs[0].Asset).To(Equal(swap.NativeAsset(500)))
		Expect(rec.CounterpartyLegs).To(HaveLen(1))
		Expect(rec.CounterpartyLegs[0].Asset).To(Equal(swap.TokenAsset("8717394", 10)))
	})

	It("is idempotent over the same history", func() {
		ledger.history = []nxt.Transaction{
			triggerTx(triggerHash),
			paymentLeg(initiator, counterparty, triggerHash, 1000, "500",
				announcement(initiator, counterparty, triggerBytes, []swap.Asset{swap.NativeAsset(500)}, nil)),
			tokenLeg(counterparty, initiator, triggerHash, 900, "8717394", "10"),
		}

		first := scan(initiator)
		second := scan(initiator)
		Expect(second).To(Equal(first))
	})

	It("keys legs by the first linked hash only", func() {
		leg := paymentLeg(initiator, counterparty, triggerHash, 1000, "500", swap.LegMessage())
		leg.Attachment.PhasingLinkedFullHashes = []string{triggerHash, "other-hash"}
		ledger.history = []nxt.Transaction{leg}

		records := scan(initiator)
		Expect(records).To(HaveLen(1))
		Expect(records[0].TriggerHash).To(Equal(triggerHash))
	})

	It("converges minFinishHeight to the smallest leg deadline", func() {
		ledger.history = []nxt.Transaction{
			paymentLeg(initiator, counterparty, triggerHash, 500, "1", swap.LegMessage()),
			paymentLeg(initiator, counterparty, triggerHash, 300, "2", swap.LegMessage()),
			paymentLeg(initiator, counterparty, triggerHash, 700, "3", swap.LegMessage()),
		}

		records := scan(initiator)
		Expect(records).To(HaveLen(1))
		Expect(records[0].MinFinishHeight).To(Equal(int64(300)))
	})

	It("ignores memos that are not protocol messages", func() {
		ledger.history = []nxt.Transaction{
			paymentLeg(initiator, counterparty, triggerHash, 500, "1", `not json at all`),
			paymentLeg(initiator, counterparty, triggerHash, 500, "1", `{"hello":"world"}`),
			paymentLeg(initiator, counterparty, triggerHash, 500, "1", `{"quack":2}`),
		}

		Expect(scan(initiator)).To(BeEmpty())
	})

	It("drops unsupported transaction types without losing the record", func() {
		leg := paymentLeg(initiator, counterparty, triggerHash, 500, "1", swap.LegMessage())
		leg.Type = 1
		leg.Subtype = 0
		ledger.history = []nxt.Transaction{leg}

		records := scan(initiator)
		Expect(records).To(HaveLen(1))
		Expect(records[0].MinFinishHeight).To(Equal(int64(500)))
		Expect(records[0].LegsBySender).To(BeEmpty())
	})

	It("skips legs with no phasing finish height", func() {
		leg := paymentLeg(initiator, counterparty, triggerHash, 0, "1", swap.LegMessage())
		ledger.history = []nxt.Transaction{leg}

		Expect(scan(initiator)).To(BeEmpty())
	})

	Context("trust verification", func() {
		It("rejects announcements whose trigger bytes do not parse", func() {
			ledger.history = []nxt.Transaction{
				paymentLeg(initiator, counterparty, triggerHash, 1000, "500",
					announcement(initiator, counterparty, "bogus-bytes", []swap.Asset{swap.NativeAsset(500)}, nil)),
			}

			records := scan(initiator)
			Expect(records).To(HaveLen(1))
			Expect(records[0].Sender).To(Equal(""))
			Expect(records[0].Recipient).To(Equal(""))
			Expect(records[0].AnnouncedAssets).To(BeEmpty())
		})

		It("rejects triggers paying less than the protocol fee", func() {
			ledger.parsed["cheap-bytes"] = nxt.Transaction{
				AmountNQT:   "1",
				RecipientRS: testConfig.TriggerAccount,
			}
			ledger.history = []nxt.Transaction{
				paymentLeg(initiator, counterparty, triggerHash, 1000, "500",
					announcement(initiator, counterparty, "cheap-bytes", []swap.Asset{swap.NativeAsset(500)}, nil)),
			}

			records := scan(initiator)
			Expect(records[0].Sender).To(Equal(""))
			Expect(records[0].AnnouncedAssets).To(BeEmpty())
		})

		It("rejects triggers paying the wrong account", func() {
			ledger.parsed["misdirected"] = nxt.Transaction{
				AmountNQT:   "100000000",
				RecipientRS: outsider,
			}
			ledger.history = []nxt.Transaction{
				paymentLeg(initiator, counterparty, triggerHash, 1000, "500",
					announcement(initiator, counterparty, "misdirected", []swap.Asset{swap.NativeAsset(500)}, nil)),
			}

			records := scan(initiator)
			Expect(records[0].Sender).To(Equal(""))
			Expect(records[0].AnnouncedAssets).To(BeEmpty())
		})

		It("locks announced data to the scanned account's own announcements", func() {
			offered := []swap.Asset{swap.NativeAsset(500)}
			ledger.history = []nxt.Transaction{
				paymentLeg(initiator, counterparty, triggerHash, 1000, "500",
					announcement(initiator, counterparty, triggerBytes, offered, nil)),
				// A conflicting announcement from a different sender must not
				// overwrite the accepted one, even with valid trigger bytes.
				paymentLeg(outsider, counterparty, triggerHash, 1000, "500",
					announcement(outsider, counterparty, triggerBytes, []swap.Asset{swap.NativeAsset(1)}, nil)),
			}

			records := scan(initiator)
			Expect(records).To(HaveLen(1))
			Expect(records[0].Sender).To(Equal(initiator))
			Expect(records[0].AnnouncedAssets).To(Equal(offered))
		})

		It("allows the scanned account to update its own announcement", func() {
			ledger.history = []nxt.Transaction{
				paymentLeg(initiator, counterparty, triggerHash, 1000, "500",
					announcement(initiator, counterparty, triggerBytes, []swap.Asset{swap.NativeAsset(500)}, nil)),
				paymentLeg(initiator, counterparty, triggerHash, 1000, "500",
					announcement(initiator, counterparty, triggerBytes, []swap.Asset{swap.NativeAsset(750)}, nil)),
			}

			records := scan(initiator)
			Expect(records[0].AnnouncedAssets).To(Equal([]swap.Asset{swap.NativeAsset(750)}))
		})
	})

	It("leaves third-party legs unclassified", func() {
		ledger.history = []nxt.Transaction{
			paymentLeg(initiator, counterparty, triggerHash, 1000, "500",
				announcement(initiator, counterparty, triggerBytes, []swap.Asset{swap.NativeAsset(500)}, nil)),
			paymentLeg(outsider, counterparty, triggerHash, 800, "42", swap.LegMessage()),
		}

		records := scan(initiator)
		Expect(records).To(HaveLen(1))
		Expect(records[0].LegsBySender).To(HaveKey(outsider))
		Expect(records[0].InitiatorLegs).To(HaveLen(1))
		Expect(records[0].CounterpartyLegs).To(BeEmpty())
	})

	It("records a trigger observation on its own", func() {
		ledger.history = []nxt.Transaction{triggerTx(triggerHash)}

		records := scan(initiator)
		Expect(records).To(HaveLen(1))
		Expect(records[0].GotTrigger).To(BeTrue())
		Expect(records[0].MinFinishHeight).To(Equal(int64(0)))
		Expect(records[0].LegsBySender).To(BeEmpty())
	})
})
