package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateUID gera identificadores longos para usuários e trilha de auditoria
func GenerateUID() (string, error) {
	return gonanoid.Generate(characters, 21)
}
