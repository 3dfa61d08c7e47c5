package entity

// Company is identified by a slug code that never changes after creation
type Company struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CompanyDetail is a company together with every invoice billed to it
type CompanyDetail struct {
	Company
	Invoices []*Invoice `json:"invoices"`
}

// CompanyRef is the short form returned after a company is deleted
type CompanyRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Ref returns the code/name pair identifying c
func (c *Company) Ref() CompanyRef {
	return CompanyRef{Code: c.Code, Name: c.Name}
}
