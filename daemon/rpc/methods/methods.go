package methods

import (
	"encoding/json"

	"github.com/quackswap/quack/daemon/rpc/handlers"
	"github.com/quackswap/quack/daemon/types"
)

type Method interface {
	Name() string
	Query(cfg *types.CoreConfig, params json.RawMessage) (json.RawMessage, error)
}

type initiateSwap struct{}

func InitiateSwap() Method {
	return &initiateSwap{}
}

func (m *initiateSwap) Name() string {
	return "initiateSwap"
}

func (m *initiateSwap) Query(cfg *types.CoreConfig, params json.RawMessage) (json.RawMessage, error) {
	var req types.RequestInitiate
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}

	resp, err := handlers.Initiate(*cfg, req)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resp)
}

type acceptSwap struct{}

func AcceptSwap() Method {
	return &acceptSwap{}
}

func (m *acceptSwap) Name() string {
	return "acceptSwap"
}

func (m *acceptSwap) Query(cfg *types.CoreConfig, params json.RawMessage) (json.RawMessage, error) {
	var req types.RequestAccept
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}

	resp, err := handlers.Accept(*cfg, req)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resp)
}

type triggerSwap struct{}

func TriggerSwap() Method {
	return &triggerSwap{}
}

func (m *triggerSwap) Name() string {
	return "triggerSwap"
}

func (m *triggerSwap) Query(cfg *types.CoreConfig, params json.RawMessage) (json.RawMessage, error) {
	var req types.RequestTrigger
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}

	resp, err := handlers.Trigger(*cfg, req)
	if err != nil {
		return nil, err
	}
	return json.Marshal(resp)
}

type scanSwaps struct{}

func ScanSwaps() Method {
	return &scanSwaps{}
}

func (m *scanSwaps) Name() string {
	return "scanSwaps"
}

func (m *scanSwaps) Query(cfg *types.CoreConfig, params json.RawMessage) (json.RawMessage, error) {
	var req types.RequestScan
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}

	records, err := handlers.Scan(*cfg, req)
	if err != nil {
		return nil, err
	}
	return json.Marshal(records)
}

type listSwaps struct{}

func ListSwaps() Method {
	return &listSwaps{}
}

func (m *listSwaps) Name() string {
	return "listSwaps"
}

func (m *listSwaps) Query(cfg *types.CoreConfig, params json.RawMessage) (json.RawMessage, error) {
	var req types.RequestList
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, err
	}

	swaps, err := handlers.List(*cfg, req)
	if err != nil {
		return nil, err
	}
	return json.Marshal(swaps)
}
