package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-sheets/internal/application/dto"
	"github.com/jhoicas/Inventario-sheets/internal/domain"
	"github.com/jhoicas/Inventario-sheets/internal/domain/entity"
	"github.com/jhoicas/Inventario-sheets/internal/domain/inventory"
	"github.com/jhoicas/Inventario-sheets/pkg/logger"
)

// InventoryUseCase casos de uso sobre una tabla de inventario que el llamador posee
// (view, add, edit, delete). Cada mutación termina con una sobrescritura completa de la hoja.
type InventoryUseCase struct {
	loader *CachedLoader
	syncer *ReplaceAllSyncer
	report ReportGenerator
	log    *logger.Logger
	now    func() time.Time
}

// NewInventoryUseCase construye el caso de uso. report puede ser nil si no se exponen reportes.
func NewInventoryUseCase(loader *CachedLoader, syncer *ReplaceAllSyncer, report ReportGenerator, log *logger.Logger) *InventoryUseCase {
	return &InventoryUseCase{
		loader: loader,
		syncer: syncer,
		report: report,
		log:    log,
		now:    time.Now,
	}
}

// SetClock reemplaza el reloj usado para la fecha por defecto (tests).
func (uc *InventoryUseCase) SetClock(now func() time.Time) { uc.now = now }

// Load crea la tabla de una sesión a partir de la hoja (con caché).
func (uc *InventoryUseCase) Load(ctx context.Context) (*inventory.Table, error) {
	return uc.loader.Load(ctx)
}

// Reload reemplaza el contenido de tbl con la hoja actual, sin pasar por la caché.
func (uc *InventoryUseCase) Reload(ctx context.Context, tbl *inventory.Table) (*dto.ReloadResponse, error) {
	fresh, err := uc.loader.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	tbl.Replace(fresh)
	return &dto.ReloadResponse{TableSize: tbl.Len()}, nil
}

// View aplica los filtros sin persistir nada.
func (uc *InventoryUseCase) View(tbl *inventory.Table, in dto.InventoryFilter) (*dto.InventoryViewResponse, error) {
	filter, err := toFilter(in)
	if err != nil {
		return nil, err
	}
	view := tbl.Filter(filter)
	items := make([]dto.RecordResponse, 0, view.Len())
	for _, r := range view.Records() {
		items = append(items, toRecordResponse(r))
	}
	return &dto.InventoryViewResponse{
		Items:      items,
		Total:      len(items),
		TableSize:  tbl.Len(),
		Filter:     in,
		Categories: tbl.Categories(),
		Statuses:   statusOptions(),
	}, nil
}

// FormDefaults valores iniciales del formulario de alta.
func (uc *InventoryUseCase) FormDefaults(tbl *inventory.Table) *dto.RecordFormResponse {
	return &dto.RecordFormResponse{
		NextItemID: tbl.NextID(),
		MinItemID:  inventory.MinItemID,
		Categories: tbl.Categories(),
		Statuses:   statusOptions(),
		Today:      inventory.TruncateDate(uc.now()).Format(inventory.DateLayout),
	}
}

// Add agrega un ítem al final de la tabla y sobrescribe la hoja.
// Un item_id ya presente se rechaza con ErrDuplicate.
func (uc *InventoryUseCase) Add(ctx context.Context, tbl *inventory.Table, in dto.CreateRecordRequest) (*dto.RecordResponse, error) {
	id := tbl.NextID()
	if in.ItemID != nil {
		id = *in.ItemID
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: item_id debe ser positivo", domain.ErrInvalidInput)
	}
	lastUpdated := inventory.TruncateDate(uc.now())
	if strings.TrimSpace(in.LastUpdated) != "" {
		d, _, err := inventory.ParseDate(strings.TrimSpace(in.LastUpdated))
		if err != nil {
			return nil, fmt.Errorf("%w: last_updated debe ser DD-MM-YYYY", domain.ErrInvalidInput)
		}
		lastUpdated = d
	}
	fields := entity.RecordFields{
		ItemName:    strings.TrimSpace(in.ItemName),
		Category:    strings.TrimSpace(in.Category),
		Quantity:    in.Quantity,
		Price:       in.Price,
		Location:    strings.TrimSpace(in.Location),
		Supplier:    strings.TrimSpace(in.Supplier),
		Status:      entity.Status(in.Status),
		LastUpdated: lastUpdated,
	}
	if err := inventory.ValidateFields(fields); err != nil {
		return nil, err
	}
	if err := inventory.ValidateCategory(tbl, fields.Category); err != nil {
		return nil, err
	}
	record := entity.Record{ItemID: id}.WithFields(fields)
	if err := tbl.Insert(record); err != nil {
		return nil, err
	}
	if err := uc.sync(ctx, tbl); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("item_id", id).Str("item_name", record.ItemName).Msg("ítem agregado")
	out := toRecordResponse(record)
	return &out, nil
}

// Find localiza un ítem para precargar el formulario de edición.
func (uc *InventoryUseCase) Find(tbl *inventory.Table, id int64) (*dto.RecordLookupResponse, error) {
	r, err := tbl.Find(id)
	if err != nil {
		return nil, err
	}
	lo, hi, _ := tbl.IDRange()
	return &dto.RecordLookupResponse{
		Record:     toRecordResponse(r),
		MinItemID:  lo,
		MaxItemID:  hi,
		Categories: tbl.Categories(),
		Statuses:   statusOptions(),
	}, nil
}

// Edit reemplaza los campos no clave del ítem id (los nil conservan su valor) y sobrescribe la hoja.
// La fila mantiene su posición.
func (uc *InventoryUseCase) Edit(ctx context.Context, tbl *inventory.Table, id int64, in dto.UpdateRecordRequest) (*dto.RecordResponse, error) {
	current, err := tbl.Find(id)
	if err != nil {
		return nil, err
	}
	fields := current.Fields()
	if in.ItemName != nil {
		fields.ItemName = strings.TrimSpace(*in.ItemName)
	}
	if in.Category != nil {
		fields.Category = strings.TrimSpace(*in.Category)
	}
	if in.Quantity != nil {
		fields.Quantity = *in.Quantity
	}
	if in.Price != nil {
		fields.Price = *in.Price
	}
	if in.Location != nil {
		fields.Location = strings.TrimSpace(*in.Location)
	}
	if in.Supplier != nil {
		fields.Supplier = strings.TrimSpace(*in.Supplier)
	}
	if in.Status != nil {
		fields.Status = entity.Status(*in.Status)
	}
	if in.LastUpdated != nil {
		d, _, err := inventory.ParseDate(strings.TrimSpace(*in.LastUpdated))
		if err != nil {
			return nil, fmt.Errorf("%w: last_updated debe ser DD-MM-YYYY", domain.ErrInvalidInput)
		}
		fields.LastUpdated = d
	}
	if err := inventory.ValidateFields(fields); err != nil {
		return nil, err
	}
	if err := inventory.ValidateCategory(tbl, fields.Category); err != nil {
		return nil, err
	}
	if err := tbl.Update(id, fields); err != nil {
		return nil, err
	}
	if err := uc.sync(ctx, tbl); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("item_id", id).Msg("ítem actualizado")
	out := toRecordResponse(current.WithFields(fields))
	return &out, nil
}

// Delete elimina el ítem id y sobrescribe la hoja.
func (uc *InventoryUseCase) Delete(ctx context.Context, tbl *inventory.Table, id int64) (*dto.DeleteRecordResponse, error) {
	if err := tbl.Delete(id); err != nil {
		return nil, err
	}
	if err := uc.sync(ctx, tbl); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("item_id", id).Msg("ítem eliminado")
	return &dto.DeleteRecordResponse{ItemID: id, TableSize: tbl.Len()}, nil
}

// Report genera el reporte de existencias de la vista filtrada.
func (uc *InventoryUseCase) Report(ctx context.Context, tbl *inventory.Table, in dto.InventoryFilter) ([]byte, error) {
	if uc.report == nil {
		return nil, fmt.Errorf("%w: reportes no configurados", domain.ErrNotFound)
	}
	filter, err := toFilter(in)
	if err != nil {
		return nil, err
	}
	view := tbl.Filter(filter)
	rep := StockReport{
		Title:       "Inventario",
		SheetName:   uc.loader.SheetName(),
		Category:    orAll(filter.Category),
		Status:      orAll(filter.Status),
		Records:     view.Records(),
		TotalValue:  decimal.Zero,
		GeneratedAt: uc.now(),
	}
	for _, r := range rep.Records {
		rep.TotalQuantity += r.Quantity
		rep.TotalValue = rep.TotalValue.Add(r.Price.Mul(decimal.NewFromInt(int64(r.Quantity))))
	}
	return uc.report.GenerateStockReport(ctx, rep)
}

// sync aplica la política replace-all. Si falla, tbl queda con el cambio aplicado y la
// hoja puede haber quedado distinta (sin rollback).
func (uc *InventoryUseCase) sync(ctx context.Context, tbl *inventory.Table) error {
	if err := uc.syncer.ReplaceAll(ctx, tbl); err != nil {
		uc.loader.Invalidate()
		return err
	}
	uc.loader.Remember(tbl)
	return nil
}

func toFilter(in dto.InventoryFilter) (inventory.Filter, error) {
	f := inventory.Filter{Category: in.Category, Status: in.Status}
	if f.Status != "" && f.Status != inventory.AllOption && !entity.Status(f.Status).Valid() {
		return f, fmt.Errorf("%w: status %q no es válido", domain.ErrInvalidInput, f.Status)
	}
	return f, nil
}

func orAll(s string) string {
	if s == "" {
		return inventory.AllOption
	}
	return s
}

func statusOptions() []string {
	out := make([]string, 0, 3)
	for _, s := range entity.Statuses() {
		out = append(out, string(s))
	}
	return out
}

func toRecordResponse(r entity.Record) dto.RecordResponse {
	return dto.RecordResponse{
		ItemID:      r.ItemID,
		ItemName:    r.ItemName,
		Category:    r.Category,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Location:    r.Location,
		Supplier:    r.Supplier,
		Status:      string(r.Status),
		LastUpdated: r.LastUpdated.Format(inventory.DateLayout),
	}
}
