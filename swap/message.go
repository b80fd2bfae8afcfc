package swap

import "encoding/json"

// Message is a parsed transaction memo. All protocol messages are small JSON
// objects tagged with "quack":1; accessors below are total so that untrusted
// history never needs defensive checks at call sites.
type Message map[string]interface{}

// ParseMessage decodes an attached memo. ok is false when the memo is not a
// JSON object; such memos are not part of the protocol.
func ParseMessage(raw string) (Message, bool) {
	var msg Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return nil, false
	}
	if msg == nil {
		return nil, false
	}
	return msg, true
}

func messageInt(msg Message, key string) (int64, bool) {
	v, ok := msg[key]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

func messageString(msg Message, key string) (string, bool) {
	v, ok := msg[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// messageAssets reads an asset list field, dropping entries that do not
// decode as asset descriptors.
func messageAssets(msg Message, key string) []Asset {
	items, ok := msg[key].([]interface{})
	if !ok {
		return nil
	}
	assets := make([]Asset, 0, len(items))
	for _, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			continue
		}
		var a Asset
		if err := json.Unmarshal(data, &a); err != nil {
			continue
		}
		assets = append(assets, a)
	}
	return assets
}

// IsQuack reports whether the memo belongs to the swap protocol.
func IsQuack(msg Message) bool {
	v, ok := messageInt(msg, "quack")
	return ok && v == 1
}

// IsTrigger reports whether the memo marks its transaction as a swap trigger.
func IsTrigger(msg Message) bool {
	v, ok := messageInt(msg, "trigger")
	return ok && v == 1
}

// TriggerBytes returns the announced unsigned trigger bytes, if any.
func TriggerBytes(msg Message) (string, bool) {
	return messageString(msg, "triggerBytes")
}

// TriggerMessage is the memo carried by the trigger transaction itself.
func TriggerMessage() string {
	return `{"quack":1,"trigger":1}`
}

// LegMessage is the memo carried by every swap leg except the announcing one.
func LegMessage() string {
	return `{"quack":1}`
}

type announcementMessage struct {
	Quack        int     `json:"quack"`
	Sender       string  `json:"sender"`
	Recipient    string  `json:"recipient"`
	TriggerBytes string  `json:"triggerBytes"`
	Assets       []Asset `json:"assets"`
	Expected     []Asset `json:"expected_assets"`
}

// AnnouncementMessage builds the memo embedded in the first leg of a swap:
// the parties, the unsigned trigger bytes, and the full offered/expected
// asset lists. It is the authoritative declaration of the swap's terms.
func AnnouncementMessage(sender, recipient, triggerBytes string, offered, expected []Asset) (string, error) {
	data, err := json.Marshal(announcementMessage{
		Quack:        1,
		Sender:       sender,
		Recipient:    recipient,
		TriggerBytes: triggerBytes,
		Assets:       offered,
		Expected:     expected,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}
