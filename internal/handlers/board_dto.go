package handlers

import (
	"strconv"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-cells/internal/render"
	"github.com/vancomm/minesweeper-cells/internal/repository"
)

type CreateBoardDTO struct {
	Rows int `schema:"rows,required"`
	Cols int `schema:"cols,required"`
}

type ThemeDTO struct {
	Theme string `schema:"theme"`
}

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type BoardDTO struct {
	BoardId   string `json:"board_id"`
	Rows      int    `json:"rows"`
	Cols      int    `json:"cols"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

func NewBoardDTO(b *repository.Board) *BoardDTO {
	return &BoardDTO{
		BoardId:   strconv.FormatInt(b.BoardId, 10),
		Rows:      b.Rows,
		Cols:      b.Cols,
		CreatedAt: b.CreatedAt.UnixMilli(),
		UpdatedAt: b.UpdatedAt.UnixMilli(),
	}
}

type CellsDTO struct {
	BoardId string     `json:"board_id"`
	Theme   string     `json:"theme"`
	Assets  [][]string `json:"assets"`
}

type CellDTO struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Asset  string `json:"asset"`
	Redraw bool   `json:"redraw"`
}

func newCellDTO(id render.AssetID, row, col int, redraw bool) *CellDTO {
	return &CellDTO{Row: row, Col: col, Asset: id.String(), Redraw: redraw}
}
