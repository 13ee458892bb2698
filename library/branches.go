package library

import "github.com/rs/zerolog"

// BranchService manages the physical locations of a multi-branch library.
type BranchService struct {
	store *Store
	log   zerolog.Logger
}

// NewBranchService wires a branch service over the store.
func NewBranchService(store *Store, log zerolog.Logger) *BranchService {
	return &BranchService{store: store, log: log}
}

// CreateBranch registers a new branch with a fresh id.
func (s *BranchService) CreateBranch(name, address string) *Branch {
	branch := &Branch{
		ID:      NewBranchID(),
		Name:    name,
		Address: address,
	}
	s.store.SaveBranch(branch)
	s.log.Info().Str("name", name).Str("branch", branch.ID).Msg("branch created")
	return branch
}

// UpdateBranch rewrites a branch's name and address.
func (s *BranchService) UpdateBranch(branchID, name, address string) error {
	branch, ok := s.store.Branch(branchID)
	if !ok {
		return &NotFoundError{Resource: "branch", ID: branchID}
	}
	branch.Name = name
	branch.Address = address
	s.store.SaveBranch(branch)
	s.log.Info().Str("branch", branchID).Msg("branch updated")
	return nil
}

// Branch fetches a single branch.
func (s *BranchService) Branch(branchID string) (*Branch, error) {
	branch, ok := s.store.Branch(branchID)
	if !ok {
		return nil, &NotFoundError{Resource: "branch", ID: branchID}
	}
	return branch, nil
}

// AllBranches returns all branches in id order.
func (s *BranchService) AllBranches() []*Branch { return s.store.Branches() }

// AddBookToInventory shelves an ISBN at the branch.
func (s *BranchService) AddBookToInventory(branchID, isbn string) error {
	branch, ok := s.store.Branch(branchID)
	if !ok {
		return &NotFoundError{Resource: "branch", ID: branchID}
	}
	branch.AddToInventory(isbn)
	s.store.SaveBranch(branch)
	return nil
}

// RemoveBookFromInventory takes an ISBN off the branch's shelf list.
func (s *BranchService) RemoveBookFromInventory(branchID, isbn string) error {
	branch, ok := s.store.Branch(branchID)
	if !ok {
		return &NotFoundError{Resource: "branch", ID: branchID}
	}
	branch.RemoveFromInventory(isbn)
	s.store.SaveBranch(branch)
	return nil
}
