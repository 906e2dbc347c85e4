package usecase

import (
	"context"
	"errors"

	"revorz/internal/domain/model"
	repo "revorz/internal/repository"
)

// バリアント未選択のプレースホルダ値。選択済み扱いにしない。
const VariantUnavailable = "unavailable"

// CartUsecase は /api/cart の業務ロジックです。
// カートはセッション単位。activeカートは無ければ遅延作成する。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// 明細＋商品表示情報
type CartItemView struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"product_id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Quantity    int64  `json:"quantity"`
	Color       string `json:"color"`
	Size        string `json:"size"`
}

type CartView struct {
	Cart  model.Cart     `json:"cart"`
	Items []CartItemView `json:"items"`
	Total int64          `json:"total"`
}

type AddToCartInput struct {
	ProductID int64
	Quantity  int64
	Color     string
	Size      string
}

// GetCartView はカート取得（無ければactiveを作って空を返す）。
// 読み取りだが遅延作成の書き込み副作用がある。これは意図した仕様。
func (u *CartUsecase) GetCartView(ctx context.Context, sessionID string, userID *int64) (CartView, error) {
	if sessionID == "" {
		return CartView{}, NewValidationError("no session")
	}

	cart, err := u.cartRepo.GetOrCreateActiveBySessionID(ctx, sessionID, userID)
	if err != nil {
		return CartView{}, NewStorageError("db error")
	}

	return u.buildCartView(ctx, cart)
}

// AddToCart はカートに追加（同一の商品×色×サイズは数量加算）。
// 加算後の行も返す（フロントは該当行だけ差し替えられる）。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionID string, userID *int64, in AddToCartInput) (CartView, CartItemView, error) {
	if sessionID == "" {
		return CartView{}, CartItemView{}, NewValidationError("no session")
	}
	if in.ProductID <= 0 {
		return CartView{}, CartItemView{}, NewValidationError("invalid product_id")
	}

	// 数量：未指定(0)は1にする。明示的な負値は拒否。
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return CartView{}, CartItemView{}, NewValidationError("invalid quantity")
	}

	// バリアント必須。プレースホルダは未選択扱い。
	if in.Color == "" || in.Size == "" || in.Color == VariantUnavailable || in.Size == VariantUnavailable {
		return CartView{}, CartItemView{}, NewValidationError("color and size are required")
	}

	// 商品チェック＋追加時点の価格を取る
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, CartItemView{}, NewNotFoundError("product not found")
	}
	if err != nil {
		return CartView{}, CartItemView{}, NewStorageError("db error")
	}

	// activeカート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateActiveBySessionID(ctx, sessionID, userID)
	if err != nil {
		return CartView{}, CartItemView{}, NewStorageError("db error")
	}

	// Upsert（同一バリアントは加算）。unit_priceは追加時点の価格。
	if err := u.cartItemRepo.UpsertByVariant(ctx, cart.ID, in.ProductID, in.Color, in.Size, qty, p.Price); err != nil {
		return CartView{}, CartItemView{}, NewStorageError("db error")
	}

	// 加算後のバリアント行を取り直す
	merged, err := u.cartItemRepo.FindByVariant(ctx, cart.ID, in.ProductID, in.Color, in.Size)
	if err != nil {
		return CartView{}, CartItemView{}, NewStorageError("db error")
	}

	added := CartItemView{
		ID:          merged.ID,
		ProductID:   merged.ProductID,
		Name:        p.Name,
		Image:       p.Image,
		Description: p.Description,
		Price:       merged.UnitPrice,
		Quantity:    merged.Quantity,
		Color:       merged.Color,
		Size:        merged.Size,
	}

	view, err := u.buildCartView(ctx, cart)
	if err != nil {
		return CartView{}, CartItemView{}, err
	}
	return view, added, nil
}

// 数量変更（所有チェック付き）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID string, itemID int64, qty int64) (CartView, error) {
	if sessionID == "" {
		return CartView{}, NewValidationError("no session")
	}
	if itemID <= 0 {
		return CartView{}, NewValidationError("invalid item_id")
	}
	if qty < 1 {
		return CartView{}, NewValidationError("quantity must be a positive integer")
	}

	owned, err := u.cartItemRepo.IsOwnedBySession(ctx, itemID, sessionID)
	if err != nil {
		return CartView{}, NewStorageError("db error")
	}
	if !owned {
		return CartView{}, NewNotFoundError("cart item not found")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, itemID, qty); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartView{}, NewNotFoundError("cart item not found")
		}
		return CartView{}, NewStorageError("db error")
	}

	cart, err := u.cartRepo.FindActiveBySessionID(ctx, sessionID)
	if err != nil {
		return CartView{}, NewStorageError("db error")
	}
	return u.buildCartView(ctx, cart)
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, itemID int64) (CartView, error) {
	if sessionID == "" {
		return CartView{}, NewValidationError("no session")
	}
	if itemID <= 0 {
		return CartView{}, NewValidationError("invalid item_id")
	}

	owned, err := u.cartItemRepo.IsOwnedBySession(ctx, itemID, sessionID)
	if err != nil {
		return CartView{}, NewStorageError("db error")
	}
	if !owned {
		return CartView{}, NewNotFoundError("cart item not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, itemID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartView{}, NewNotFoundError("cart item not found")
		}
		return CartView{}, NewStorageError("db error")
	}

	cart, err := u.cartRepo.FindActiveBySessionID(ctx, sessionID)
	if err != nil {
		return CartView{}, NewStorageError("db error")
	}
	return u.buildCartView(ctx, cart)
}

// カートを空にする（カート自体は残す）
func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string, userID *int64) (CartView, error) {
	if sessionID == "" {
		return CartView{}, NewValidationError("no session")
	}

	cart, err := u.cartRepo.GetOrCreateActiveBySessionID(ctx, sessionID, userID)
	if err != nil {
		return CartView{}, NewStorageError("db error")
	}

	if err := u.cartItemRepo.DeleteByCartID(ctx, cart.ID); err != nil {
		return CartView{}, NewStorageError("db error")
	}

	return u.buildCartView(ctx, cart)
}

// GetCartItemCount はactiveカートの数量合計。
// セッション無し・カート無しは0（エラーにしない）。
func (u *CartUsecase) GetCartItemCount(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, nil
	}

	cart, err := u.cartRepo.FindActiveBySessionID(ctx, sessionID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, NewStorageError("db error")
	}

	count, err := u.cartItemRepo.SumQuantityByCartID(ctx, cart.ID)
	if err != nil {
		return 0, NewStorageError("db error")
	}
	return count, nil
}

// 明細と商品表示情報をまとめてCartViewを作る。
func (u *CartUsecase) buildCartView(ctx context.Context, cart model.Cart) (CartView, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartView{}, NewStorageError("db error")
	}

	viewItems := make([]CartItemView, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		v := CartItemView{
			ID:        it.ID,
			ProductID: it.ProductID,
			Price:     it.UnitPrice,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
		}

		// 商品が消えていても明細は出す（表示情報だけ欠ける）
		if p, err := u.productRepo.FindByID(ctx, it.ProductID); err == nil {
			v.Name = p.Name
			v.Image = p.Image
			v.Description = p.Description
		}

		viewItems = append(viewItems, v)
		total += it.UnitPrice * it.Quantity
	}

	return CartView{Cart: cart, Items: viewItems, Total: total}, nil
}
