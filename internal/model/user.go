package model

type User struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password []byte `json:"password"`
}
