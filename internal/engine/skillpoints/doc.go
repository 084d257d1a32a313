// Package skillpoints computes how many skill points a character must assign
// by hand to wear a set of items, and materialises the leftover budget into
// an aggregate item.
//
// The allocator works per attribute. Items that grant a bonus can help meet the
// requirement of items equipped after them, so the order in which items are put
// on matters. Allocate picks the order that needs the fewest assigned points
// and then checks that every item is still satisfied once all bonuses,
// negative ones included, are applied. Crafted items never lend their bonus to
// another requirement.
package skillpoints
