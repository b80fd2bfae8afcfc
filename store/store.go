package store

import (
	"sync"

	"gorm.io/gorm"
)

type Status uint

const (
	Unknown Status = iota
	Initiated
	Accepted
	Triggered
	Failed
)

type Role string

const (
	RoleInitiator Role = "initiator"
	RoleAcceptor  Role = "acceptor"
)

// Swap is one locally-submitted swap. The row exists so the initiator can
// recover the unsigned trigger bytes after a restart and commit the swap
// later; on-ledger state is always reconstructed by scanning, never from
// here.
type Swap struct {
	gorm.Model

	Account      uint32 `gorm:"uniqueIndex:idx_account_trigger"`
	TriggerHash  string `gorm:"uniqueIndex:idx_account_trigger"`
	TriggerBytes string
	Counterparty string
	FinishHeight int64
	Role         Role
	Status       Status
	Error        string
}

type Store interface {
	UserStore(account uint32) UserStore
}

type UserStore interface {
	PutInitiated(triggerHash, triggerBytes, counterparty string, finishHeight int64) error
	PutAccepted(triggerHash, counterparty string, finishHeight int64) error
	PutStatus(triggerHash string, status Status) error
	PutError(triggerHash, errMsg string) error
	Swap(triggerHash string) (Swap, error)
	Swaps() ([]Swap, error)
}

type store struct {
	mu *sync.RWMutex
	db *gorm.DB
}

type userStore struct {
	mu      *sync.RWMutex
	db      *gorm.DB
	account uint32
}

func NewStore(dialector gorm.Dialector, opts ...gorm.Option) (Store, error) {
	db, err := gorm.Open(dialector, opts...)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Swap{}); err != nil {
		return nil, err
	}
	return &store{mu: new(sync.RWMutex), db: db}, nil
}

func (s *store) UserStore(account uint32) UserStore {
	return &userStore{mu: s.mu, db: s.db, account: account}
}

func (s *userStore) PutInitiated(triggerHash, triggerBytes, counterparty string, finishHeight int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	swap := Swap{
		Account:      s.account,
		TriggerHash:  triggerHash,
		TriggerBytes: triggerBytes,
		Counterparty: counterparty,
		FinishHeight: finishHeight,
		Role:         RoleInitiator,
		Status:       Initiated,
	}
	if tx := s.db.Create(&swap); tx.Error != nil {
		return tx.Error
	}
	return nil
}

func (s *userStore) PutAccepted(triggerHash, counterparty string, finishHeight int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	swap := Swap{
		Account:      s.account,
		TriggerHash:  triggerHash,
		Counterparty: counterparty,
		FinishHeight: finishHeight,
		Role:         RoleAcceptor,
		Status:       Accepted,
	}
	if tx := s.db.Create(&swap); tx.Error != nil {
		return tx.Error
	}
	return nil
}

func (s *userStore) PutStatus(triggerHash string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.db.Model(&Swap{}).
		Where("account = ? AND trigger_hash = ?", s.account, triggerHash).
		Update("status", status)
	return tx.Error
}

func (s *userStore) PutError(triggerHash, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.db.Model(&Swap{}).
		Where("account = ? AND trigger_hash = ?", s.account, triggerHash).
		Updates(map[string]interface{}{"status": Failed, "error": errMsg})
	return tx.Error
}

func (s *userStore) Swap(triggerHash string) (Swap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var swap Swap
	if tx := s.db.Where("account = ? AND trigger_hash = ?", s.account, triggerHash).First(&swap); tx.Error != nil {
		return Swap{}, tx.Error
	}
	return swap, nil
}

func (s *userStore) Swaps() ([]Swap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var swaps []Swap
	if tx := s.db.Where("account = ?", s.account).Order("created_at DESC").Find(&swaps); tx.Error != nil {
		return nil, tx.Error
	}
	return swaps, nil
}
