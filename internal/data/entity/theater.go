package entity

type Theater struct {
	Base
	Name    string `db:"name"`
	Address string `db:"address"`
}
