package entity

import "errors"

var (
	// ErrInitialization возвращается, если классификатор не удалось загрузить.
	ErrInitialization = errors.New("detector initialization failed")

	// ErrDecode возвращается, если байты не удалось разобрать как изображение.
	ErrDecode = errors.New("could not decode image")

	// ErrModelFetch возвращается, если файл модели не удалось скачать или сохранить.
	ErrModelFetch = errors.New("model fetch failed")
)
