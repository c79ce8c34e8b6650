package tweak

// BindValue calls apply with the current value and again after every change.
// The returned handler detaches the subscription.
func BindValue[T any](value Observable[T], apply func(T)) *Handler {
	h := value.Emitter().On(EventChange, func(ev ValueEvent[T]) {
		apply(ev.RawValue)
	})
	apply(value.RawValue())
	return h
}

// BindValueMap is BindValue for the Value stored under key in m.
func BindValueMap[T any](m *ValueMap, key string, apply func(T)) (*Handler, error) {
	v, err := MapValue[T](m, key)
	if err != nil {
		return nil, err
	}
	return BindValue[T](v, apply), nil
}
