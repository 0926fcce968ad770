package models

import "time"

// Seller is the issuing company printed in the invoice header. The profile can be
// persisted; DefaultSeller is used when nothing is stored.
type Seller struct {
	ID          int64     `json:"id" bson:"-" db:"id"`
	Name        string    `json:"name" bson:"name" db:"name"`
	GSTIN       string    `json:"gstin" bson:"gstin" db:"gstin"`
	Address     string    `json:"address" bson:"address" db:"address"`
	Phone       string    `json:"phone" bson:"phone" db:"phone"`
	BankDetails string    `json:"bank_details" bson:"bank_details" db:"bank_details"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" db:"created_at"`
}

func DefaultSeller() Seller {
	return Seller{
		Name:        "Select Media House",
		GSTIN:       "09AFMPG9060R1ZK",
		Address:     "A-6, Sarla Bagh Extension, Dayal Bagh, Agra - 282005 (U.P.)",
		Phone:       "9837346250",
		BankDetails: "Bank : Canara Bank, MG Road, Agra\nIFSC Code:- CNRB0000192 A/c : 0192201001908",
	}
}
