/*
Package orm provides typed access to the key value store.

A ModelBucket stores protobuf models under a common key prefix. Each model
is validated before it is written and is loaded back into a caller provided
destination:

	b := orm.NewModelBucket("acct")
	if err := b.Put(db, addr, &acc); err != nil {
		...
	}
	var acc Account
	if err := b.One(db, addr, &acc); err != nil {
		...
	}
*/
package orm
