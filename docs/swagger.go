// Package docs Arcade Locator API.
//
// Сервис поиска залов игровых автоматов рядом с точкой.
// Точка поиска передаётся координатами или компактным токеном локации,
// который можно вставить в URL и которым удобно делиться.
//
// Основные возможности:
// - Кодирование и декодирование токенов локации
// - Поиск магазинов в радиусе от точки или токена
// - Поиск магазинов по названию
// - Управление каталогом магазинов
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
