package domain

import "time"

// Optional marks a patch field as present or absent.
// Optional 表示补丁字段存在或缺失
type Optional[T any] struct {
	value T
	set   bool
}

// Some 返回一个存在的值
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// None 返回缺失值
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr maps nil to absent.
// FromPtr nil 视为缺失
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

func (o Optional[T]) IsSet() bool {
	return o.set
}

// PasswordChange 密码变更
type PasswordChange struct {
	IsPasswordProtected bool
	// Password plaintext, hashed before it reaches the store // 明文，入库前哈希
	Password string
}

// ExpiryChange 过期设置变更
type ExpiryChange struct {
	IsExpiring     bool
	ExpirationDate *time.Time
}

// DocumentPatch partial update. Active is not patchable; deletion has its own flow.
// DocumentPatch 部分更新，active 不可通过补丁修改，删除走独立流程
type DocumentPatch struct {
	Title          Optional[string]
	Content        Optional[string]
	Tags           Optional[[]string]
	Type           Optional[DocumentType]
	Syntax         Optional[string]
	Privacy        Optional[Privacy]
	ExpiryStatus   Optional[ExpiryChange]
	PasswordStatus Optional[PasswordChange]
}

// IsEmpty 是否没有任何字段
func (p DocumentPatch) IsEmpty() bool {
	return !p.Title.IsSet() && !p.Content.IsSet() && !p.Tags.IsSet() && !p.Type.IsSet() &&
		!p.Syntax.IsSet() && !p.Privacy.IsSet() && !p.ExpiryStatus.IsSet() && !p.PasswordStatus.IsSet()
}
