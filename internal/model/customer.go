package model

type Customer struct {
	UserID  int
	Name    string
	Address string
	Phone   string
	ZoneID  int
}
