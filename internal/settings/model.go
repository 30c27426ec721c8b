package settings

// CompanySettings is the single company profile read by the tax engine
// and the invoice numbering authority.
type CompanySettings struct {
	Name           string `json:"name"`
	Tagline        string `json:"tagline,omitempty"`
	Address        string `json:"address"`
	FactoryAddress string `json:"factory_address,omitempty"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`

	GSTIN     string `json:"gstin"`
	StateName string `json:"state_name,omitempty"`
	StateCode string `json:"state_code"`

	GSTBankName     string `json:"gst_bank_name,omitempty"`
	GSTAccountNo    string `json:"gst_account_no,omitempty"`
	GSTIFSC         string `json:"gst_ifsc,omitempty"`
	GSTUPI          string `json:"gst_upi,omitempty"`
	NonGSTBankName  string `json:"non_gst_bank_name,omitempty"`
	NonGSTAccountNo string `json:"non_gst_account_no,omitempty"`
	NonGSTIFSC      string `json:"non_gst_ifsc,omitempty"`

	InvoicePrefix      string `json:"invoice_prefix"`
	InvoiceStartNumber int    `json:"invoice_start_number"`
	FooterText         string `json:"footer_text,omitempty"`
	Terms              string `json:"terms,omitempty"`
}

// DefaultStateCode applies when no state code has been configured.
const DefaultStateCode = "19"

// Defaults returns the initial company profile used before the
// settings record has been saved.
func Defaults() CompanySettings {
	return CompanySettings{
		Name:               "Natural Health World",
		Tagline:            "The Herbal Healing",
		Address:            "4, Circus Range, Kolkata - 700 019",
		Phone:              "9143746966",
		GSTIN:              "19ABCDE1234F1Z5",
		StateName:          "West Bengal",
		StateCode:          DefaultStateCode,
		InvoicePrefix:      "NH",
		InvoiceStartNumber: 1,
	}
}
