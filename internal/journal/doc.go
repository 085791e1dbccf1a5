// Package journal holds the journal entry model and the rules that turn an
// entry into an ordered list of titled fields.
//
// An entry has four fixed core fields and any number of user-added dynamic
// fields named customField_<n>. Every displayable field gets a title from,
// in order of precedence:
//
//  1. the entry's own override (Entry.CustomTitles, or a legacy top-level
//     "<key>_title" property folded in when the entry is decoded);
//  2. the global Titles table;
//  3. the built-in question for core fields;
//  4. the raw key.
//
// Dynamic field titles live under "<key>_title" inside CustomTitles; core
// field titles live under the key itself.
package journal
